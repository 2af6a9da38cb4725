package catalog

import (
	"fmt"

	"github.com/eng618/wfc-loom/pkg/model"
)

// Asymmetry is one violation of the §3 bidirectional-consistency invariant:
// p allows q as a neighbor in direction d, but q does not allow p as a
// neighbor in the opposite direction.
type Asymmetry struct {
	PatternUID  int
	NeighborUID int
	Direction   model.Direction
}

func (a Asymmetry) String() string {
	return fmt.Sprintf("pattern %d allows neighbor %d in direction %s, but %d does not allow %d in %s",
		a.PatternUID, a.NeighborUID, a.Direction, a.NeighborUID, a.PatternUID, a.Direction.Opposite())
}

// ValidationReport is the validator's pass/fail result. It never aborts
// catalog loading (§4.6) — the loader decides what to do with it.
type ValidationReport struct {
	Asymmetries []Asymmetry
}

// OK reports whether the palette is fully bidirectionally consistent.
func (r ValidationReport) OK() bool {
	return len(r.Asymmetries) == 0
}

// Validate checks, for every pair (p, q) and direction d, that
// q ∈ p.rules[d] ⇔ p ∈ q.rules[opposite(d)] (§3). Every violating triple is
// reported; the validator never repairs or aborts.
func Validate(patterns []*model.MetaPattern) ValidationReport {
	var report ValidationReport

	byUID := make(map[int]*model.MetaPattern, len(patterns))
	for _, p := range patterns {
		byUID[p.UID] = p
	}

	for _, p := range patterns {
		for _, d := range model.AllDirections {
			for _, qUID := range p.Rules.UIDs(d) {
				q, ok := byUID[qUID]
				if !ok {
					report.Asymmetries = append(report.Asymmetries, Asymmetry{
						PatternUID:  p.UID,
						NeighborUID: qUID,
						Direction:   d,
					})
					continue
				}
				if !q.Rules.Allows(d.Opposite(), p.UID) {
					report.Asymmetries = append(report.Asymmetries, Asymmetry{
						PatternUID:  p.UID,
						NeighborUID: q.UID,
						Direction:   d,
					})
				}
			}
		}
	}

	return report
}
