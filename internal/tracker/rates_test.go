package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neo84716/ro-data/internal/domain"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		mods     domain.Modifiers
		expected float64
	}{
		{"base rate", domain.Modifiers{ServerRate: 100}, 1.0},
		{"server double", domain.Modifiers{ServerRate: 200}, 2.0},
		{"manual and gear stack additively", domain.Modifiers{ServerRate: 100, ManualBook: 50, GearRate: 25}, 1.75},
		{"double rate event", domain.Modifiers{ServerRate: 100, ManualBook: 100, DoubleRate: true}, 4.0},
		{"zero server rate", domain.Modifiers{ServerRate: 0, ManualBook: 200}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Multiplier(tt.mods), 1e-12)
		})
	}
}

func TestExpPerHour(t *testing.T) {
	base := domain.Modifiers{ServerRate: 100}

	assert.Equal(t, 1200.0, ExpPerHour(600, 30, base))
	assert.Equal(t, 0.0, ExpPerHour(600, 0, base))
	assert.Equal(t, 0.0, ExpPerHour(600, 30, domain.Modifiers{}))
}

func TestBaseExpPerHour(t *testing.T) {
	mods := domain.Modifiers{ServerRate: 100, ManualBook: 100, DoubleRate: true}
	assert.Equal(t, 250.0, BaseExpPerHour(1000, mods))
	assert.Equal(t, 0.0, BaseExpPerHour(1000, domain.Modifiers{}))
}

func TestHoursToLevel(t *testing.T) {
	tbl := linear()
	c := domain.CategoryPostAdvancement

	hours, needed, ok := HoursToLevel(tbl, lp(3, 0), 5, 350, c)
	assert.True(t, ok)
	assert.Equal(t, 700.0, needed)
	assert.Equal(t, 2.0, hours)

	_, _, ok = HoursToLevel(tbl, lp(3, 0), 5, 0, c)
	assert.False(t, ok)

	_, _, ok = HoursToLevel(tbl, lp(3, 0), 300, 100, c)
	assert.False(t, ok)

	tbl.missing = map[int]bool{4: true}
	_, _, ok = HoursToLevel(tbl, lp(3, 0), 5, 100, c)
	assert.False(t, ok)
}
