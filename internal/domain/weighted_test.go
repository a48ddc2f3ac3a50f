package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferRarity(t *testing.T) {
	tests := []struct {
		rate float64
		want Rarity
	}{
		{0.05, RaritySS},
		{0.2, RarityS},
		{1.5, RarityS},
		{2.0, RarityA},
		{8.0, RarityB},
		{19.99, RarityB},
		{20.0, RarityC},
		{25.95, RarityC},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferRarity(tt.rate), "rate %g", tt.rate)
	}
}

func TestParseRarity(t *testing.T) {
	r, ok := ParseRarity(" ss ")
	assert.True(t, ok)
	assert.Equal(t, RaritySS, r)

	_, ok = ParseRarity("SSR")
	assert.False(t, ok)

	assert.True(t, RarityS.IsHigh())
	assert.False(t, RarityA.IsHigh())
}

func TestWeightedSet_Validate(t *testing.T) {
	valid := WeightedSet{ID: "p", Outcomes: []WeightedOutcome{
		{ID: "a", Weight: 0},
		{ID: "b", Weight: 2.5},
	}}

	tests := []struct {
		name string
		set  WeightedSet
		want error
	}{
		{"valid with zero-weight entry", valid, nil},
		{"empty", WeightedSet{ID: "p"}, ErrEmptySet},
		{"all zero", WeightedSet{Outcomes: []WeightedOutcome{{ID: "a"}, {ID: "b"}}}, ErrZeroWeight},
		{"negative", WeightedSet{Outcomes: []WeightedOutcome{{ID: "a", Weight: -1}, {ID: "b", Weight: 5}}}, ErrNegativeWeight},
		{"duplicate", WeightedSet{Outcomes: []WeightedOutcome{{ID: "a", Weight: 1}, {ID: "a", Weight: 1}}}, ErrDuplicateOutcome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.InDelta(t, 2.5, valid.TotalWeight(), 1e-12)
	o, ok := valid.Find("b")
	assert.True(t, ok)
	assert.Equal(t, 2.5, o.Weight)
	_, ok = valid.Find("z")
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	c, err := ParseCategory("DORAM")
	assert.NoError(t, err)
	assert.Equal(t, CategoryDoram, c)
	assert.True(t, c.Specialized())
	assert.Equal(t, UncappedMaxLevel, c.MaxLevel())

	_, err = ParseCategory("novice")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.True(t, CategoryPreAdvancement.Capped())
	assert.Equal(t, CappedMaxLevel, CategoryPreAdvancement.MaxLevel())
	assert.Equal(t, CategoryPostAdvancement, CategoryThirdClass.EarlyTable())
	assert.Equal(t, CategoryPreAdvancement, CategoryPreAdvancement.EarlyTable())
}

func TestRecordFilter_Matches(t *testing.T) {
	on, off := true, false
	rec := TrackingRecord{
		MapName:   "Abyss Lake Dungeon 3",
		Modifiers: Modifiers{ManualBook: 50, DoubleRate: false},
	}

	assert.True(t, RecordFilter{}.Matches(rec))
	assert.True(t, RecordFilter{MapContains: "abyss"}.Matches(rec))
	assert.False(t, RecordFilter{MapContains: "glast"}.Matches(rec))
	assert.True(t, RecordFilter{ManualBook: &on}.Matches(rec))
	assert.False(t, RecordFilter{ManualBook: &off}.Matches(rec))
	assert.False(t, RecordFilter{DoubleRate: &on}.Matches(rec))
	assert.True(t, RecordFilter{DoubleRate: &off, MapContains: "LAKE"}.Matches(rec))
}
