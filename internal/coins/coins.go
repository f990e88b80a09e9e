// Package coins holds the fixed coin denomination set accepted by the
// machine and the greedy change-making algorithm built on top of it.
package coins

import (
	"math"
	"sort"
)

// validDenominations is the fixed set of accepted coin face values.
// Every balance in the system is a sum of these, so any amount the
// machine owes back is a multiple of the smallest denomination.
var validDenominations = []float64{0.5, 1, 2, 5, 10}

// IsValid reports whether value is an accepted coin denomination.
// Non-finite and non-positive values are never valid.
func IsValid(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return false
	}
	for _, d := range validDenominations {
		if value == d {
			return true
		}
	}
	return false
}

// Denominations returns the accepted denominations in ascending order.
// Callers receive a copy and cannot mutate the registry.
func Denominations() []float64 {
	out := make([]float64, len(validDenominations))
	copy(out, validDenominations)
	return out
}

// DenominationsDescending returns the accepted denominations largest
// first, the order change-making consumes them in.
func DenominationsDescending() []float64 {
	out := Denominations()
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
