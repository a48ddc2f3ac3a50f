package draw

import (
	"context"
	"math"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/logger"
	"github.com/neo84716/ro-data/internal/utils"
)

// Source yields uniform values in [0,1)
type Source func() float64

// Mode selects the normalization constant a draw scales against
type Mode int

const (
	// ModeNormalized scales r into [0, total weight)
	ModeNormalized Mode = iota
	// ModeFixedPercent scales r into [0, 100); undershooting tables fall back to the last outcome
	ModeFixedPercent
)

func (m Mode) String() string {
	if m == ModeFixedPercent {
		return "fixed_percent"
	}
	return "normalized"
}

// Engine draws outcomes from weighted sets. It holds no session state and is
// safe for concurrent use when its Source is.
type Engine struct {
	rnd      Source
	mode     Mode
	expected float64
	epsilon  float64
}

// Option configures an Engine
type Option func(*Engine)

// WithSource replaces the random source
func WithSource(rnd Source) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// WithMode sets the normalization mode
func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// WithExpectedTotal sets the total weight sets are expected to sum to.
// It only drives the deviation warning.
func WithExpectedTotal(total, epsilon float64) Option {
	return func(e *Engine) {
		e.expected = total
		e.epsilon = epsilon
	}
}

// NewEngine creates an engine using the package random source by default
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rnd:      utils.RandomFloat,
		mode:     ModeNormalized,
		expected: FixedPercentTotal,
		epsilon:  DefaultDeviationEpsilon,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode reports the engine's normalization mode
func (e *Engine) Mode() Mode {
	return e.mode
}

// Summary describes a validated set
type Summary struct {
	Total     float64 `json:"total_weight"`
	Expected  float64 `json:"expected_weight"`
	Deviation float64 `json:"deviation"`
	Deviates  bool    `json:"deviates"`
}

// Validate checks the set invariants and flags a total that strays from the
// expected normalization constant. A deviating set is still drawable.
func (e *Engine) Validate(ctx context.Context, set domain.WeightedSet) (Summary, error) {
	if err := set.Validate(); err != nil {
		return Summary{}, err
	}
	total := set.TotalWeight()
	dev := total - e.expected
	sum := Summary{
		Total:     total,
		Expected:  e.expected,
		Deviation: dev,
		Deviates:  math.Abs(dev) > e.epsilon,
	}
	if sum.Deviates {
		logger.FromContext(ctx).Warn(LogMsgWeightDeviation,
			LogFieldSetID, set.ID,
			LogFieldTotal, total,
			LogFieldExpected, e.expected)
	}
	return sum, nil
}

// Draw selects one outcome. It walks the set in order and returns the first
// outcome whose cumulative weight reaches r; zero-weight outcomes are never
// selected. If nothing is reached the last outcome is returned.
func (e *Engine) Draw(set domain.WeightedSet) (domain.WeightedOutcome, error) {
	if len(set.Outcomes) == 0 {
		return domain.WeightedOutcome{}, domain.ErrEmptySet
	}
	total := set.TotalWeight()
	if total <= 0 {
		return domain.WeightedOutcome{}, domain.ErrZeroWeight
	}
	return e.pick(set.Outcomes, total), nil
}

func (e *Engine) pick(outcomes []domain.WeightedOutcome, total float64) domain.WeightedOutcome {
	scale := total
	if e.mode == ModeFixedPercent {
		scale = FixedPercentTotal
	}
	r := e.rnd() * scale

	var cumulative float64
	for _, o := range outcomes {
		if o.Weight <= 0 {
			continue
		}
		cumulative += o.Weight
		if cumulative >= r {
			return o
		}
	}
	return outcomes[len(outcomes)-1]
}

// DrawResult is one selected outcome and the 1-based trial it came from
type DrawResult struct {
	Outcome domain.WeightedOutcome `json:"outcome"`
	Trial   int                    `json:"trial"`
}

// BatchResult holds every draw of a batch and the batch-local counts
type BatchResult struct {
	Results []DrawResult   `json:"results"`
	Counts  map[string]int `json:"counts"`
}

// DrawBatch performs count independent draws. Non-positive counts are treated as 1.
// Each draw is reported to rec as it happens.
func (e *Engine) DrawBatch(set domain.WeightedSet, count int, rec Recorder) (BatchResult, error) {
	if count <= 0 {
		count = 1
	}
	if len(set.Outcomes) == 0 {
		return BatchResult{}, domain.ErrEmptySet
	}
	total := set.TotalWeight()
	if total <= 0 {
		return BatchResult{}, domain.ErrZeroWeight
	}

	res := BatchResult{
		Results: make([]DrawResult, 0, count),
		Counts:  make(map[string]int),
	}
	for i := 1; i <= count; i++ {
		o := e.pick(set.Outcomes, total)
		res.Results = append(res.Results, DrawResult{Outcome: o, Trial: i})
		res.Counts[o.ID]++
		record(rec, o)
	}
	return res, nil
}

// DrawUntil repeats single draws until target comes up or maxAttempts is reached.
// maxAttempts <= 0 uses DefaultMaxAttempts.
func (e *Engine) DrawUntil(set domain.WeightedSet, target string, maxAttempts int, rec Recorder) (SeekResult, error) {
	if target == "" {
		return SeekResult{}, domain.ErrMissingTarget
	}
	s, err := e.NewSeeker([]domain.WeightedSet{set}, []string{target}, maxAttempts, rec)
	if err != nil {
		return SeekResult{}, err
	}
	s.Step(s.Remaining())
	return s.Result(), nil
}

// DrawUntilCombo draws once from every set per attempt until each set matches its
// target (or the target is Wildcard). maxAttempts <= 0 uses DefaultComboMaxAttempts.
func (e *Engine) DrawUntilCombo(sets []domain.WeightedSet, targets []string, maxAttempts int, rec Recorder) (SeekResult, error) {
	s, err := e.NewSeeker(sets, targets, maxAttempts, rec)
	if err != nil {
		return SeekResult{}, err
	}
	s.Step(s.Remaining())
	return s.Result(), nil
}
