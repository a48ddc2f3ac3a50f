package domain

import (
	"strings"
	"time"
)

// DefaultMapName is stored when a record is saved without a map
const DefaultMapName = "unknown"

// Modifiers are the rate bonuses active during a grinding session
type Modifiers struct {
	ServerRate float64 `json:"server_rate"` // percent, 100 = 1x
	GearRate   float64 `json:"gear_rate"`   // bonus percent from equipment
	ManualBook float64 `json:"manual_book"` // 0, 50, 100 or 200
	DoubleRate bool    `json:"double_rate"`
}

// TrackingRecord is an immutable snapshot of one completed session
type TrackingRecord struct {
	ID              string            `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	MapName         string            `json:"map_name"`
	Category        CharacterCategory `json:"category"`
	StartLevel      int               `json:"start_level"`
	StartPercent    float64           `json:"start_percent"`
	EndLevel        int               `json:"end_level"`
	EndPercent      float64           `json:"end_percent"`
	DurationMinutes float64           `json:"duration_minutes"`
	Modifiers       Modifiers         `json:"modifiers"`
	TotalExpGained  float64           `json:"total_exp_gained"`
	ExpPerHour      float64           `json:"exp_per_hour"`
}

// RecordFilter narrows a history listing. Nil pointers match everything.
type RecordFilter struct {
	MapContains string
	ManualBook  *bool
	DoubleRate  *bool
	Limit       int
}

// Matches applies the filter to a single record
func (f RecordFilter) Matches(r TrackingRecord) bool {
	if f.ManualBook != nil && (r.Modifiers.ManualBook > 0) != *f.ManualBook {
		return false
	}
	if f.DoubleRate != nil && r.Modifiers.DoubleRate != *f.DoubleRate {
		return false
	}
	if f.MapContains == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.MapName), strings.ToLower(f.MapContains))
}
