package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
)

// compatiblePalette returns n patterns that mutually allow each other in
// every direction, so any cell can take any pattern regardless of
// neighbors.
func compatiblePalette(n int) []*model.MetaPattern {
	palette := make([]*model.MetaPattern, n)
	for i := 0; i < n; i++ {
		palette[i] = &model.MetaPattern{UID: i, Rules: model.NewRuleSet()}
	}
	for _, mp := range palette {
		for _, d := range model.AllDirections {
			for _, other := range palette {
				mp.Rules.Add(d, other.UID)
			}
		}
	}
	return palette
}

func TestNewGridInitializesEntropyToPaletteSize(t *testing.T) {
	palette := compatiblePalette(4)
	g := grid.New(3, 3, palette)

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			assert.Equal(t, 4, g.EntropyAt(model.Point{X: x, Y: y}))
			assert.Nil(t, g.At(model.Point{X: x, Y: y}))
		}
	}
	assert.False(t, g.IsCollapsed())
}

func TestNeighborsWithDirectionAtCorner(t *testing.T) {
	g := grid.New(3, 3, compatiblePalette(1))
	nd := g.NeighborsWithDirection(model.Point{X: 0, Y: 0})
	assert.Len(t, nd, 2)
}

func TestPlaceZeroesEntropyAndMarksCollapsed(t *testing.T) {
	palette := compatiblePalette(2)
	g := grid.New(1, 1, palette)

	g.Place(model.Point{X: 0, Y: 0}, palette[0])
	assert.Equal(t, 0, g.EntropyAt(model.Point{X: 0, Y: 0}))
	assert.True(t, g.IsCollapsed())
}

// TestValidPatternsIntersectsNeighborRules verifies the opposite-direction
// reading of a neighbor's rule set: a collapsed neighbor at direction d
// constrains p to neighbor.Rules.UIDs(d.Opposite()).
func TestValidPatternsIntersectsNeighborRules(t *testing.T) {
	a := &model.MetaPattern{UID: 0, Rules: model.NewRuleSet()}
	b := &model.MetaPattern{UID: 1, Rules: model.NewRuleSet()}
	// a is placed at X=1; its Down-neighbor is X=0. a.Rules[Down] is what
	// constrains that neighbor, since ValidPatterns reads the neighbor's
	// rules in the direction back toward p.
	a.Rules.Add(model.Down, b.UID)
	b.Rules.Add(model.Up, a.UID)

	g := grid.New(2, 1, []*model.MetaPattern{a, b})
	g.Place(model.Point{X: 1, Y: 0}, a)

	candidates := g.ValidPatterns(model.Point{X: 0, Y: 0})
	require.Len(t, candidates, 1)
	assert.Equal(t, b.UID, candidates[0].UID)
}

func TestUpdateEntropyPropagatesAndStopsAtFixpoint(t *testing.T) {
	palette := compatiblePalette(3)
	g := grid.New(1, 3, palette)

	g.Place(model.Point{X: 0, Y: 1}, palette[0])
	g.UpdateEntropy(model.Point{X: 0, Y: 1})

	// fully compatible palette: placing the middle cell doesn't constrain
	// its neighbors at all, so their entropy stays at len(palette).
	assert.Equal(t, 3, g.EntropyAt(model.Point{X: 0, Y: 0}))
	assert.Equal(t, 3, g.EntropyAt(model.Point{X: 0, Y: 2}))
}

// TestFindLeastEntropyCellTiesBreakToCenter is scenario S4: width=height=5,
// a palette of 4 mutually compatible patterns, all entropies tied. The
// first selected cell must be the grid center (2,2).
func TestFindLeastEntropyCellTiesBreakToCenter(t *testing.T) {
	g := grid.New(5, 5, compatiblePalette(4))
	p, ok := g.FindLeastEntropyCell()
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 2, Y: 2}, p)
}

func TestZeroEntropyCellDetectsContradiction(t *testing.T) {
	a := &model.MetaPattern{UID: 0, Rules: model.NewRuleSet()}
	b := &model.MetaPattern{UID: 1, Rules: model.NewRuleSet()}
	// a does not allow anything above it, so the cell above a has zero
	// valid patterns once a is placed.
	g := grid.New(2, 1, []*model.MetaPattern{a, b})
	g.Place(model.Point{X: 1, Y: 0}, a)
	g.UpdateEntropy(model.Point{X: 1, Y: 0})

	p, has := g.ZeroEntropyCell()
	require.True(t, has)
	assert.Equal(t, model.Point{X: 0, Y: 0}, p)
}

func TestResetRestoresEntropyAndClearsCell(t *testing.T) {
	palette := compatiblePalette(4)
	g := grid.New(3, 3, palette)
	target := model.Point{X: 1, Y: 1}

	g.Place(target, palette[0])
	g.Reset(target)

	assert.Nil(t, g.At(target))
	assert.Equal(t, 4, g.EntropyAt(target))
}

func TestForbidExcludesUIDFromValidPatterns(t *testing.T) {
	palette := compatiblePalette(3)
	g := grid.New(1, 1, palette)

	g.Forbid(model.Point{X: 0, Y: 0}, palette[0].UID)
	candidates := g.ValidPatterns(model.Point{X: 0, Y: 0})

	for _, c := range candidates {
		assert.NotEqual(t, palette[0].UID, c.UID)
	}
	assert.Len(t, candidates, 2)
}

func TestSnapshotAndRestoreRoundTrip(t *testing.T) {
	palette := compatiblePalette(2)
	g := grid.New(2, 2, palette)
	g.Place(model.Point{X: 0, Y: 0}, palette[1])
	g.UpdateEntropy(model.Point{X: 0, Y: 0})

	state := g.Snapshot()

	restored := grid.New(2, 2, palette)
	restored.Restore(state, func(uid int) (*model.MetaPattern, bool) {
		for _, mp := range palette {
			if mp.UID == uid {
				return mp, true
			}
		}
		return nil, false
	})

	assert.Equal(t, palette[1].UID, restored.At(model.Point{X: 0, Y: 0}).UID)
	assert.Equal(t, g.EntropyAt(model.Point{X: 1, Y: 1}), restored.EntropyAt(model.Point{X: 1, Y: 1}))
}
