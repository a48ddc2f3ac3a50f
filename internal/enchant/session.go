package enchant

import (
	"sync"
	"time"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/draw"
)

// Session holds the current enchant on every slot of one piece of equipment
// plus per-slot tallies of everything rolled so far.
type Session struct {
	ID        string
	Profile   Profile
	Equipment string
	CreatedAt time.Time

	mu      sync.Mutex
	tally   *draw.SlotTally
	current []*domain.WeightedOutcome
	busy    bool
}

func newSession(id string, p Profile, equipment string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Profile:   p,
		Equipment: equipment,
		CreatedAt: now,
		tally:     draw.NewSlotTally(len(p.Slots)),
		current:   make([]*domain.WeightedOutcome, len(p.Slots)),
	}
}

// Record implements draw.Recorder for whole-equipment rolls
func (s *Session) Record(outcomes ...domain.WeightedOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordAll(outcomes)
}

// recordAll applies one roll of every slot. Caller holds mu.
func (s *Session) recordAll(outcomes []domain.WeightedOutcome) {
	s.tally.Record(outcomes...)
	for i := range outcomes {
		if i < len(s.current) {
			o := outcomes[i]
			s.current[i] = &o
		}
	}
}

// recordSlot applies a single-slot roll. Caller holds mu.
func (s *Session) recordSlot(idx int, o domain.WeightedOutcome) {
	s.tally.RecordSlot(idx, o)
	s.current[idx] = &o
}

func (s *Session) sets() []domain.WeightedSet {
	sets := make([]domain.WeightedSet, len(s.Profile.Slots))
	for i, d := range s.Profile.Slots {
		sets[i] = d.Set()
	}
	return sets
}

// SlotView is the state of one slot
type SlotView struct {
	SlotID  int                     `json:"slot_id"`
	Name    string                  `json:"name"`
	Current *domain.WeightedOutcome `json:"current"`
	Counts  map[string]int          `json:"counts"`
}

// View is a point-in-time copy of a session
type View struct {
	ID        string     `json:"id"`
	ProfileID string     `json:"profile_id"`
	Equipment string     `json:"equipment"`
	CreatedAt time.Time  `json:"created_at"`
	Trials    int        `json:"trials"`
	Slots     []SlotView `json:"slots"`
	Busy      bool       `json:"busy"`
}

// view snapshots the session. Caller holds mu.
func (s *Session) view() View {
	t := s.tally.Snapshot()
	v := View{
		ID:        s.ID,
		ProfileID: s.Profile.ID,
		Equipment: s.Equipment,
		CreatedAt: s.CreatedAt,
		Trials:    t.Trials,
		Slots:     make([]SlotView, len(s.Profile.Slots)),
		Busy:      s.busy,
	}
	for i, d := range s.Profile.Slots {
		sv := SlotView{SlotID: d.SlotID, Name: d.Name, Counts: t.Slots[i]}
		if c := s.current[i]; c != nil {
			o := *c
			sv.Current = &o
		}
		v.Slots[i] = sv
	}
	return v
}

// beginExclusive fails while a roll or seek owns the session. Caller holds mu.
func (s *Session) beginExclusive() error {
	if s.busy {
		return domain.ErrSeekInProgress
	}
	return nil
}

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
