package tracker

import (
	"math"

	"github.com/neo84716/ro-data/internal/domain"
)

// Multiplier is the effective experience rate for a set of modifiers, where 1 is base rate
func Multiplier(m domain.Modifiers) float64 {
	mult := (m.ServerRate / 100) * ((100 + m.ManualBook + m.GearRate) / 100)
	if m.DoubleRate {
		mult *= DoubleRateFactor
	}
	return mult
}

// ExpPerHour converts a session gain into an hourly rate.
// It is 0 when the duration is not positive or the modifiers cancel all gain.
func ExpPerHour(gained, minutes float64, m domain.Modifiers) float64 {
	if minutes <= 0 || Multiplier(m) <= 0 {
		return 0
	}
	return gained / (minutes / 60)
}

// BaseExpPerHour strips the modifiers from an hourly rate, giving the 1x equivalent
func BaseExpPerHour(perHour float64, m domain.Modifiers) float64 {
	mult := Multiplier(m)
	if mult <= 0 {
		return 0
	}
	return perHour / mult
}

// HoursToLevel estimates the hours needed to reach target from start at perHour.
// ok is false when the rate is not positive or the target is not reachable
// with known table data.
func HoursToLevel(lk Lookup, start domain.LevelProgress, target int, perHour float64, c domain.CharacterCategory) (hours float64, needed float64, ok bool) {
	if perHour <= 0 || target > c.MaxLevel() || target < 1 {
		return 0, 0, false
	}
	for l := 1; l < target; l++ {
		if _, known := lk.RequiredExp(l, c); !known {
			return 0, 0, false
		}
	}
	needed = ExpDifference(lk, start, domain.LevelProgress{Level: target}, c)
	hours = needed / perHour
	if math.IsInf(hours, 0) || math.IsNaN(hours) {
		return 0, 0, false
	}
	return hours, needed, true
}
