package gacha

import (
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/draw"
)

var printer = message.NewPrinter(language.English)

// Session is one player's pull history against a single pool.
// The tally is updated trial by trial, so a cancelled seek keeps its pulls.
type Session struct {
	ID        string
	Pool      domain.WeightedSet
	CreatedAt time.Time

	mu    sync.Mutex
	tally *draw.Tally
	log   []string
	busy  bool
}

func newSession(id string, pool domain.WeightedSet, unitCost float64, now time.Time) *Session {
	return &Session{
		ID:        id,
		Pool:      pool,
		CreatedAt: now,
		tally:     draw.NewTally(unitCost),
	}
}

// Record implements draw.Recorder
func (s *Session) Record(outcomes ...domain.WeightedOutcome) {
	s.mu.Lock()
	s.tally.Record(outcomes...)
	s.mu.Unlock()
}

// logf appends a formatted line, keeping only the newest LogCapacity lines. Caller holds mu.
func (s *Session) logf(format string, args ...interface{}) {
	s.log = append(s.log, printer.Sprintf(format, args...))
	if over := len(s.log) - LogCapacity; over > 0 {
		s.log = append([]string(nil), s.log[over:]...)
	}
}

// View is a point-in-time copy of a session
type View struct {
	ID        string         `json:"id"`
	PoolID    string         `json:"pool_id"`
	PoolName  string         `json:"pool_name"`
	CreatedAt time.Time      `json:"created_at"`
	Pulls     int            `json:"pulls"`
	Spent     float64        `json:"spent"`
	UnitCost  float64        `json:"unit_cost"`
	Counts    map[string]int `json:"counts"`
	Log       []string       `json:"log"`
	Busy      bool           `json:"busy"`
}

// view snapshots the session. Caller holds mu.
func (s *Session) view() View {
	t := s.tally.Snapshot()
	return View{
		ID:        s.ID,
		PoolID:    s.Pool.ID,
		PoolName:  s.Pool.Name,
		CreatedAt: s.CreatedAt,
		Pulls:     t.Trials,
		Spent:     t.Cost(),
		UnitCost:  t.UnitCost,
		Counts:    t.Counts,
		Log:       append([]string(nil), s.log...),
		Busy:      s.busy,
	}
}

// beginExclusive fails while a batch or seek owns the session. Caller holds mu.
func (s *Session) beginExclusive() error {
	if s.busy {
		return domain.ErrSeekInProgress
	}
	return nil
}

// acquire marks the session busy until release. Draws recorded in between
// come only from the owner.
func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginExclusive(); err != nil {
		return err
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
