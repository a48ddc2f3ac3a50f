package utils

import (
	"math"
	"math/rand"
	"sync"
)

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Simulation randomness, not security critical
}

// NewSeededFloat returns a deterministic, goroutine-safe source in [0,1).
func NewSeededFloat(seed int64) func() float64 {
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // Reproducible simulations
	var mu sync.Mutex
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return r.Float64()
	}
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
