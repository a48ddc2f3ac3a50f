package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomFloat_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandomFloat()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestNewSeededFloat_Deterministic(t *testing.T) {
	a := NewSeededFloat(42)
	b := NewSeededFloat(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a(), b())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "below range", value: -5, expected: 0},
		{name: "inside range", value: 42.5, expected: 42.5},
		{name: "above range", value: 150, expected: 100},
		{name: "upper bound", value: 100, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.value, 0, 100))
		})
	}
}
