package domain

import (
	"fmt"
	"strings"
)

// Rarity is an advisory tag on an outcome. It never affects draw odds.
type Rarity string

const (
	RaritySS Rarity = "SS"
	RarityS  Rarity = "S"
	RarityA  Rarity = "A"
	RarityB  Rarity = "B"
	RarityC  Rarity = "C"
)

// Rate thresholds (percent) used when a pool row carries no explicit rarity
const (
	RarityThresholdSS = 0.2
	RarityThresholdS  = 2.0
	RarityThresholdA  = 6.0
	RarityThresholdB  = 20.0
)

// InferRarity maps a drop rate in percent to a rarity tier
func InferRarity(rate float64) Rarity {
	switch {
	case rate < RarityThresholdSS:
		return RaritySS
	case rate < RarityThresholdS:
		return RarityS
	case rate < RarityThresholdA:
		return RarityA
	case rate < RarityThresholdB:
		return RarityB
	default:
		return RarityC
	}
}

// ParseRarity accepts an explicit tier label such as "SS" or "b"
func ParseRarity(s string) (Rarity, bool) {
	switch r := Rarity(strings.ToUpper(strings.TrimSpace(s))); r {
	case RaritySS, RarityS, RarityA, RarityB, RarityC:
		return r, true
	}
	return "", false
}

// IsHigh reports whether the rarity is worth calling out in session logs
func (r Rarity) IsHigh() bool {
	return r == RaritySS || r == RarityS
}

// WeightedOutcome is one mutually exclusive result of a draw
type WeightedOutcome struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Rarity   Rarity  `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
	Rare     bool    `json:"rare,omitempty" yaml:"rare,omitempty"`
}

// WeightedSet is an ordered, non-empty list of outcomes with unique ids.
// Weights need not sum to 100.
type WeightedSet struct {
	ID       string            `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Outcomes []WeightedOutcome `json:"outcomes" yaml:"outcomes"`
}

// TotalWeight sums all outcome weights
func (s WeightedSet) TotalWeight() float64 {
	var total float64
	for _, o := range s.Outcomes {
		total += o.Weight
	}
	return total
}

// Find returns the outcome with the given id
func (s WeightedSet) Find(id string) (WeightedOutcome, bool) {
	for _, o := range s.Outcomes {
		if o.ID == id {
			return o, true
		}
	}
	return WeightedOutcome{}, false
}

// Validate checks the structural invariants of the set: at least one outcome,
// unique ids, no negative weights and a positive total.
func (s WeightedSet) Validate() error {
	if len(s.Outcomes) == 0 {
		return ErrEmptySet
	}
	seen := make(map[string]struct{}, len(s.Outcomes))
	var total float64
	for _, o := range s.Outcomes {
		if o.Weight < 0 {
			return fmt.Errorf("%w: %s has weight %g", ErrNegativeWeight, o.ID, o.Weight)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateOutcome, o.ID)
		}
		seen[o.ID] = struct{}{}
		total += o.Weight
	}
	if total <= 0 {
		return ErrZeroWeight
	}
	return nil
}
