package domain

import (
	"fmt"
	"strings"
)

// CharacterCategory selects which experience tables apply and the level cap
type CharacterCategory string

const (
	CategoryPreAdvancement  CharacterCategory = "pre_advancement"
	CategoryPostAdvancement CharacterCategory = "post_advancement"
	CategoryThirdClass      CharacterCategory = "third_class"
	CategoryDoram           CharacterCategory = "doram"
)

// Level brackets shared by every category
const (
	CappedMaxLevel   = 99
	UncappedMaxLevel = 260
	MidBracketStart  = 100
	MidBracketEnd    = 200
)

// AllCategories lists categories in display order
var AllCategories = []CharacterCategory{
	CategoryPreAdvancement,
	CategoryPostAdvancement,
	CategoryThirdClass,
	CategoryDoram,
}

// ParseCategory accepts the canonical name in any case
func ParseCategory(s string) (CharacterCategory, error) {
	c := CharacterCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c CharacterCategory) Valid() bool {
	switch c {
	case CategoryPreAdvancement, CategoryPostAdvancement, CategoryThirdClass, CategoryDoram:
		return true
	}
	return false
}

// Capped is true for the category that stops at level 99
func (c CharacterCategory) Capped() bool {
	return c == CategoryPreAdvancement
}

// Specialized is true when the category owns a dedicated table up to level 200
func (c CharacterCategory) Specialized() bool {
	return c == CategoryDoram
}

// MaxLevel is the highest attainable level
func (c CharacterCategory) MaxLevel() int {
	if c.Capped() {
		return CappedMaxLevel
	}
	return UncappedMaxLevel
}

// EarlyTable names the low-level table a category falls back to below the mid bracket.
// Third-class characters share the post-advancement table.
func (c CharacterCategory) EarlyTable() CharacterCategory {
	if c == CategoryThirdClass {
		return CategoryPostAdvancement
	}
	return c
}

// LevelData is the experience needed to advance from Level to Level+1
type LevelData struct {
	Level       int     `json:"level" yaml:"level"`
	RequiredExp float64 `json:"required_exp" yaml:"required_exp"`
}

// LevelProgress is a position on the level curve
type LevelProgress struct {
	Level   int     `json:"level"`
	Percent float64 `json:"percent"`
}
