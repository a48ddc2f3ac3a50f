package draw

import (
	"context"
	"fmt"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/logger"
)

// SeekResult reports how a seeking loop ended. Exhaustion is not an error:
// Found is false and Attempts equals the ceiling.
type SeekResult struct {
	Found     bool         `json:"found"`
	Attempts  int          `json:"attempts"`
	Max       int          `json:"max_attempts"`
	Results   []DrawResult `json:"results,omitempty"`
	Cancelled bool         `json:"cancelled,omitempty"`
}

// Seeker is a resumable seeking loop. A host calls Step repeatedly with any
// chunk size; the recorder sees the same sequence of trials regardless of how
// the work is split. A Seeker is not safe for concurrent use.
type Seeker struct {
	engine  *Engine
	sets    []domain.WeightedSet
	totals  []float64
	targets []string
	max     int
	rec     Recorder

	attempts int
	found    bool
	last     []DrawResult
}

// NewSeeker validates a seek request. targets[i] applies to sets[i] and is either
// an outcome id or Wildcard; at least one must be concrete.
func (e *Engine) NewSeeker(sets []domain.WeightedSet, targets []string, maxAttempts int, rec Recorder) (*Seeker, error) {
	if len(sets) == 0 {
		return nil, domain.ErrEmptySet
	}
	if len(targets) != len(sets) {
		return nil, fmt.Errorf("%w: %d targets for %d sets", domain.ErrTargetMismatch, len(targets), len(sets))
	}

	totals := make([]float64, len(sets))
	concrete := 0
	for i, set := range sets {
		if len(set.Outcomes) == 0 {
			return nil, fmt.Errorf("set %d: %w", i, domain.ErrEmptySet)
		}
		totals[i] = set.TotalWeight()
		if totals[i] <= 0 {
			return nil, fmt.Errorf("set %d: %w", i, domain.ErrZeroWeight)
		}
		t := targets[i]
		if t == "" {
			return nil, fmt.Errorf("set %d: %w", i, domain.ErrMissingTarget)
		}
		if t == Wildcard {
			continue
		}
		if _, ok := set.Find(t); !ok {
			return nil, fmt.Errorf("%w: %q in set %d", domain.ErrUnknownTarget, t, i)
		}
		concrete++
	}
	if concrete == 0 {
		return nil, domain.ErrAllWildcard
	}

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
		if len(sets) > 1 {
			maxAttempts = DefaultComboMaxAttempts
		}
	}

	return &Seeker{
		engine:  e,
		sets:    sets,
		totals:  totals,
		targets: append([]string(nil), targets...),
		max:     maxAttempts,
		rec:     rec,
	}, nil
}

// Step runs at most n more attempts and reports whether the loop has finished.
func (s *Seeker) Step(n int) bool {
	for i := 0; i < n && !s.Done(); i++ {
		s.attempt()
	}
	return s.Done()
}

func (s *Seeker) attempt() {
	s.attempts++
	drawn := make([]domain.WeightedOutcome, len(s.sets))
	matched := true
	for i, set := range s.sets {
		drawn[i] = s.engine.pick(set.Outcomes, s.totals[i])
		if s.targets[i] != Wildcard && drawn[i].ID != s.targets[i] {
			matched = false
		}
	}
	record(s.rec, drawn...)

	if matched {
		s.found = true
		s.last = make([]DrawResult, len(drawn))
		for i, o := range drawn {
			s.last[i] = DrawResult{Outcome: o, Trial: s.attempts}
		}
	}
}

// Done is true once the target was found or the ceiling reached
func (s *Seeker) Done() bool {
	return s.found || s.attempts >= s.max
}

// Attempts made so far
func (s *Seeker) Attempts() int {
	return s.attempts
}

// Remaining attempts before the ceiling
func (s *Seeker) Remaining() int {
	if s.Done() {
		return 0
	}
	return s.max - s.attempts
}

// Result reports the current state. Before Done it describes partial progress.
func (s *Seeker) Result() SeekResult {
	return SeekResult{
		Found:    s.found,
		Attempts: s.attempts,
		Max:      s.max,
		Results:  s.last,
	}
}

// Run drives a seeker to completion in chunks, checking ctx between chunks.
// On cancellation the partial result is returned with Cancelled set; trials
// already recorded stay recorded.
func Run(ctx context.Context, s *Seeker, chunk int) SeekResult {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	for !s.Done() {
		if ctx.Err() != nil {
			logger.FromContext(ctx).Info(LogMsgSeekCancelled, LogFieldAttempts, s.attempts)
			res := s.Result()
			res.Cancelled = true
			return res
		}
		s.Step(chunk)
	}
	return s.Result()
}
