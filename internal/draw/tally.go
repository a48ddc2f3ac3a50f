package draw

import "github.com/neo84716/ro-data/internal/domain"

// Recorder observes every trial as it happens. One call per trial carries one
// outcome per set drawn in that trial, in set order.
type Recorder interface {
	Record(outcomes ...domain.WeightedOutcome)
}

func record(rec Recorder, outcomes ...domain.WeightedOutcome) {
	if rec != nil {
		rec.Record(outcomes...)
	}
}

// Tally is the running per-outcome count for a single-set session
type Tally struct {
	Counts   map[string]int `json:"counts"`
	Trials   int            `json:"trials"`
	UnitCost float64        `json:"unit_cost"`
}

// NewTally creates an empty tally charging unitCost per trial
func NewTally(unitCost float64) *Tally {
	return &Tally{Counts: make(map[string]int), UnitCost: unitCost}
}

// Record implements Recorder
func (t *Tally) Record(outcomes ...domain.WeightedOutcome) {
	t.Trials++
	for _, o := range outcomes {
		t.Counts[o.ID]++
	}
}

// Cost is trials times unit cost
func (t *Tally) Cost() float64 {
	return float64(t.Trials) * t.UnitCost
}

// Total sums all per-outcome counts
func (t *Tally) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += c
	}
	return n
}

// Reset clears counts and trials; the unit cost is kept
func (t *Tally) Reset() {
	t.Counts = make(map[string]int)
	t.Trials = 0
}

// Snapshot returns a copy safe to hand outside the session lock
func (t *Tally) Snapshot() Tally {
	counts := make(map[string]int, len(t.Counts))
	for k, v := range t.Counts {
		counts[k] = v
	}
	return Tally{Counts: counts, Trials: t.Trials, UnitCost: t.UnitCost}
}

// SlotTally keeps one count map per slot for multi-set sessions
type SlotTally struct {
	Slots  []map[string]int `json:"slots"`
	Trials int              `json:"trials"`
}

// NewSlotTally creates an empty tally for n slots
func NewSlotTally(n int) *SlotTally {
	t := &SlotTally{}
	t.init(n)
	return t
}

func (t *SlotTally) init(n int) {
	t.Slots = make([]map[string]int, n)
	for i := range t.Slots {
		t.Slots[i] = make(map[string]int)
	}
	t.Trials = 0
}

// Record implements Recorder; outcomes[i] is counted against slot i
func (t *SlotTally) Record(outcomes ...domain.WeightedOutcome) {
	t.Trials++
	for i, o := range outcomes {
		if i < len(t.Slots) {
			t.Slots[i][o.ID]++
		}
	}
}

// RecordSlot counts a single-slot trial
func (t *SlotTally) RecordSlot(slot int, o domain.WeightedOutcome) {
	if slot < 0 || slot >= len(t.Slots) {
		return
	}
	t.Trials++
	t.Slots[slot][o.ID]++
}

// Reset clears every slot
func (t *SlotTally) Reset() {
	t.init(len(t.Slots))
}

// Snapshot returns a deep copy
func (t *SlotTally) Snapshot() SlotTally {
	out := SlotTally{Slots: make([]map[string]int, len(t.Slots)), Trials: t.Trials}
	for i, m := range t.Slots {
		out.Slots[i] = make(map[string]int, len(m))
		for k, v := range m {
			out.Slots[i][k] = v
		}
	}
	return out
}
