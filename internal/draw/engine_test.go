package draw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/utils"
)

func constSource(v float64) Source {
	return func() float64 { return v }
}

func seqSource(values ...float64) Source {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func outcome(id string, w float64) domain.WeightedOutcome {
	return domain.WeightedOutcome{ID: id, Name: id, Weight: w}
}

func set(outcomes ...domain.WeightedOutcome) domain.WeightedSet {
	return domain.WeightedSet{ID: "test", Outcomes: outcomes}
}

func TestDraw_Errors(t *testing.T) {
	e := NewEngine()

	_, err := e.Draw(set())
	assert.ErrorIs(t, err, domain.ErrEmptySet)

	_, err = e.Draw(set(outcome("a", 0), outcome("b", 0)))
	assert.ErrorIs(t, err, domain.ErrZeroWeight)
}

func TestDraw_Selection(t *testing.T) {
	ab := set(outcome("a", 10), outcome("b", 90))

	tests := []struct {
		name     string
		mode     Mode
		set      domain.WeightedSet
		r        float64
		expected string
	}{
		{"normalized low value picks first", ModeNormalized, ab, 0.05, "a"},
		{"normalized boundary is inclusive", ModeNormalized, ab, 0.10, "a"},
		{"normalized just past boundary", ModeNormalized, ab, 0.11, "b"},
		{"fixed low value picks first", ModeFixedPercent, ab, 0.05, "a"},
		{"fixed undershoot falls back to last", ModeFixedPercent, set(outcome("a", 10), outcome("b", 20)), 0.9, "b"},
		{"normalized scales to partial total", ModeNormalized, set(outcome("a", 10), outcome("b", 20)), 0.3, "a"},
		{"zero weight outcome is skipped", ModeNormalized, set(outcome("z", 0), outcome("a", 10)), 0, "a"},
		{"source at one falls back to last", ModeNormalized, ab, 1.0, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(WithSource(constSource(tt.r)), WithMode(tt.mode))
			got, err := e.Draw(tt.set)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.ID)
		})
	}
}

func TestDraw_FrequencyConverges(t *testing.T) {
	e := NewEngine(WithSource(utils.NewSeededFloat(42)))
	s := set(outcome("common", 60), outcome("uncommon", 30), outcome("rare", 10))

	const n = 100000
	res, err := e.DrawBatch(s, n, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.60, float64(res.Counts["common"])/n, 0.01)
	assert.InDelta(t, 0.30, float64(res.Counts["uncommon"])/n, 0.01)
	assert.InDelta(t, 0.10, float64(res.Counts["rare"])/n, 0.01)
}

func TestDrawBatch(t *testing.T) {
	s := set(outcome("a", 25), outcome("b", 75))

	t.Run("counts sum to requested count", func(t *testing.T) {
		e := NewEngine(WithSource(utils.NewSeededFloat(7)))
		tally := NewTally(49)

		res, err := e.DrawBatch(s, 250, tally)
		require.NoError(t, err)

		assert.Len(t, res.Results, 250)
		sum := 0
		for _, c := range res.Counts {
			sum += c
		}
		assert.Equal(t, 250, sum)
		assert.Equal(t, 250, tally.Total())
		assert.Equal(t, 250, tally.Trials)
		assert.Equal(t, 250*49.0, tally.Cost())
		assert.Equal(t, 1, res.Results[0].Trial)
		assert.Equal(t, 250, res.Results[249].Trial)
	})

	t.Run("non-positive count is clamped to one", func(t *testing.T) {
		e := NewEngine()
		for _, count := range []int{0, -5} {
			res, err := e.DrawBatch(s, count, nil)
			require.NoError(t, err)
			assert.Len(t, res.Results, 1)
		}
	})

	t.Run("empty set fails", func(t *testing.T) {
		_, err := NewEngine().DrawBatch(set(), 3, nil)
		assert.ErrorIs(t, err, domain.ErrEmptySet)
	})
}

func TestValidate(t *testing.T) {
	e := NewEngine()
	ctx := context.Background()

	t.Run("exact total does not deviate", func(t *testing.T) {
		sum, err := e.Validate(ctx, set(outcome("a", 40.5), outcome("b", 59.5)))
		require.NoError(t, err)
		assert.False(t, sum.Deviates)
		assert.Equal(t, 100.0, sum.Total)
	})

	t.Run("short total is flagged but valid", func(t *testing.T) {
		sum, err := e.Validate(ctx, set(outcome("a", 40), outcome("b", 50)))
		require.NoError(t, err)
		assert.True(t, sum.Deviates)
		assert.InDelta(t, -10.0, sum.Deviation, 1e-9)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := e.Validate(ctx, set(outcome("a", 50), outcome("a", 50)))
		assert.ErrorIs(t, err, domain.ErrDuplicateOutcome)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := e.Validate(ctx, set(outcome("a", 110), outcome("b", -10)))
		assert.ErrorIs(t, err, domain.ErrNegativeWeight)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := e.Validate(ctx, set())
		assert.ErrorIs(t, err, domain.ErrEmptySet)
	})
}
