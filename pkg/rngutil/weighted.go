// Package rngutil provides the deterministic, explicitly-seeded weighted
// random choice primitive advisors and judges build on (§9 design note:
// "the weighted-choice primitive must accept an explicit seed and must not
// depend on any process-wide random state").
package rngutil

import "math/rand"

// New returns a *rand.Rand seeded deterministically from seed. Every
// advisor/judge owns one of these; none of them touch the process-global
// rand functions.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Weighted is anything with a non-negative selection weight.
type Weighted interface {
	SelectionWeight() float64
}

// WeightedChoice picks one index from weights using rng, with probability
// proportional to each weight. Weights must be non-negative and sum to a
// positive total; callers (advisors) are responsible for that invariant
// since MetaPattern.Weight is specified as > 0 (§3).
func WeightedChoice(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}
