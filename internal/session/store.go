package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/neo84716/ro-data/internal/metrics"
)

// Store keeps simulator sessions in memory with LRU eviction and a TTL.
// Sessions are not persisted; an evicted session is simply gone.
type Store[T any] struct {
	simulator string
	lru       *expirable.LRU[string, *T]
}

// NewStore creates a session store labelled with simulator in metrics.
// size: maximum number of live sessions
// ttl: idle lifetime of a session, restarted by every Put and every hit in Get
func NewStore[T any](simulator string, size int, ttl time.Duration) *Store[T] {
	s := &Store[T]{simulator: simulator}
	s.lru = expirable.NewLRU[string, *T](size, func(string, *T) {
		metrics.SessionsEvicted.WithLabelValues(simulator).Inc()
	}, ttl)
	return s
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.NewString()
}

// Put stores v under id, replacing any previous value
func (s *Store[T]) Put(id string, v *T) {
	s.lru.Add(id, v)
	s.observe()
}

// Get returns the session for id and restarts its idle timer
func (s *Store[T]) Get(id string) (*T, bool) {
	v, ok := s.lru.Get(id)
	if !ok {
		s.observe()
		return nil, false
	}
	// expirable.LRU.Get leaves the expiry alone; re-adding moves it forward
	s.lru.Add(id, v)
	return v, true
}

// Len reports the number of live sessions
func (s *Store[T]) Len() int {
	return s.lru.Len()
}

func (s *Store[T]) observe() {
	metrics.ActiveSessions.WithLabelValues(s.simulator).Set(float64(s.lru.Len()))
}
