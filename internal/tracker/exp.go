package tracker

import (
	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/utils"
)

// Lookup returns the experience needed to go from level to level+1.
// ok is false when the level is at cap or the table has no entry.
type Lookup interface {
	RequiredExp(level int, category domain.CharacterCategory) (float64, bool)
}

// AccumulatedExp is the total experience implied by (level, percent) counted from level 1.
// Levels above the category cap are clamped; unknown requirements contribute nothing.
// percent is not clamped.
func AccumulatedExp(lk Lookup, level int, percent float64, c domain.CharacterCategory) float64 {
	if maxLevel := c.MaxLevel(); level > maxLevel {
		level = maxLevel
	}
	var total float64
	for l := 1; l < level; l++ {
		if req, ok := lk.RequiredExp(l, c); ok {
			total += req
		}
	}
	if req, ok := lk.RequiredExp(level, c); ok {
		total += req * percent / 100
	}
	return total
}

// ExpDifference is the forward progress between two positions. A regression yields 0.
func ExpDifference(lk Lookup, start, end domain.LevelProgress, c domain.CharacterCategory) float64 {
	diff := AccumulatedExp(lk, end.Level, end.Percent, c) - AccumulatedExp(lk, start.Level, start.Percent, c)
	if diff < 0 {
		return 0
	}
	return diff
}

// ResolveFinalLevel adds gained experience to a starting position and returns
// where the character ends up. The climb always restarts at level 1 because
// the accumulated total already contains every level below start. It stops at
// the category cap or at the first level with an unknown requirement.
func ResolveFinalLevel(lk Lookup, start domain.LevelProgress, gained float64, c domain.CharacterCategory) domain.LevelProgress {
	remaining := AccumulatedExp(lk, start.Level, start.Percent, c) + gained
	if remaining < 0 {
		remaining = 0
	}

	level := 1
	for level < c.MaxLevel() {
		req, ok := lk.RequiredExp(level, c)
		if !ok || remaining < req*(1-climbTolerance) {
			break
		}
		remaining -= req
		level++
	}
	if remaining < 0 {
		remaining = 0
	}

	percent := 0.0
	if req, ok := lk.RequiredExp(level, c); ok && req > 0 {
		percent = utils.Clamp(remaining/req*100, 0, 100)
	}
	return domain.LevelProgress{Level: level, Percent: percent}
}
