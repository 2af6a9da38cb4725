// Package advisor implements the pluggable pattern-selection policy (§4.2):
// given a non-empty candidate set and the local grid context, choose one
// MetaPattern to place. Advisors are pure with respect to the grid — they
// may read it, never mutate it.
package advisor

import (
	"math/rand"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
	"github.com/eng618/wfc-loom/pkg/rngutil"
)

// Advisor selects one pattern from a non-empty candidate set. Implementations
// must never return a pattern outside candidates; returning any candidate is
// acceptable (§4.2's contract).
type Advisor interface {
	Select(candidates []*model.MetaPattern, g *grid.Grid, point model.Point) *model.MetaPattern
}

// RandomAdvisor chooses a weighted-random candidate, seeded deterministically
// — grounded on original_source/project/wfc/advisor.py's RandomAdvisor.
type RandomAdvisor struct {
	rng *rand.Rand
}

// NewRandomAdvisor returns a RandomAdvisor with its own seeded RNG.
func NewRandomAdvisor(seed int64) *RandomAdvisor {
	return &RandomAdvisor{rng: rngutil.New(seed)}
}

// Select performs a weighted choice over candidates.Weight.
func (a *RandomAdvisor) Select(candidates []*model.MetaPattern, g *grid.Grid, point model.Point) *model.MetaPattern {
	if len(candidates) == 0 {
		return nil
	}
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		weights[i] = c.Weight
	}
	return candidates[rngutil.WeightedChoice(a.rng, weights)]
}

// GreedyAdvisor always picks the highest-weight candidate, ties broken by
// first encountered (§4.2).
type GreedyAdvisor struct{}

// NewGreedyAdvisor returns a GreedyAdvisor.
func NewGreedyAdvisor() *GreedyAdvisor {
	return &GreedyAdvisor{}
}

// Select performs an argmax over candidates.Weight.
func (a *GreedyAdvisor) Select(candidates []*model.MetaPattern, g *grid.Grid, point model.Point) *model.MetaPattern {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	return best
}
