package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/history"
	"github.com/eng618/wfc-loom/pkg/model"
)

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

func TestAddStepIgnoresStepsWithNoChosenPoint(t *testing.T) {
	h := history.New()
	g := grid.New(1, 1, compatiblePalette(1))

	h.AddStep(g, model.ActionPlace, model.Point{}, false, nil, nil)

	assert.Equal(t, 0, h.Steps())
	assert.False(t, h.HasRollbackable())
}

func TestAddStepOnlyPlaceWithChosenPatternEntersRollbackStack(t *testing.T) {
	h := history.New()
	palette := compatiblePalette(2)
	g := grid.New(1, 1, palette)

	p := model.Point{X: 0, Y: 0}

	// a failed attempt (no chosen pattern) logs to the full history only.
	h.AddStep(g, model.ActionPlace, p, true, []int{0, 1}, nil)
	assert.Equal(t, 1, h.Steps())
	assert.False(t, h.HasRollbackable())

	// a successful placement enters the rollback stack too.
	g.Place(p, palette[0])
	h.AddStep(g, model.ActionPlace, p, true, []int{0, 1}, palette[0])
	assert.Equal(t, 2, h.Steps())
	assert.True(t, h.HasRollbackable())

	// a rollback-type snapshot logs to full only, never the rollback stack.
	h.AddStep(g, model.ActionRollback, p, true, nil, nil)
	assert.Equal(t, 3, h.Steps())

	snap, ok := h.GetLastRollbackSnapshot(false)
	require.True(t, ok)
	assert.Equal(t, palette[0].UID, snap.ChosenPatternUID)
}

func TestGetLastRollbackSnapshotPopRemovesOnlyFromRollbackView(t *testing.T) {
	h := history.New()
	palette := compatiblePalette(2)
	g := grid.New(1, 2, palette)

	p0 := model.Point{X: 0, Y: 0}
	p1 := model.Point{X: 0, Y: 1}

	g.Place(p0, palette[0])
	h.AddStep(g, model.ActionPlace, p0, true, []int{0}, palette[0])

	g.Place(p1, palette[1])
	h.AddStep(g, model.ActionPlace, p1, true, []int{1}, palette[1])

	snap, ok := h.GetLastRollbackSnapshot(true)
	require.True(t, ok)
	assert.Equal(t, palette[1].UID, snap.ChosenPatternUID)
	assert.True(t, h.HasRollbackable())
	assert.Equal(t, 2, h.Steps()) // full log untouched by the pop

	snap, ok = h.GetLastRollbackSnapshot(true)
	require.True(t, ok)
	assert.Equal(t, palette[0].UID, snap.ChosenPatternUID)
	assert.False(t, h.HasRollbackable())
}

func TestGetLastRollbackSnapshotEmptyReturnsFalse(t *testing.T) {
	h := history.New()
	_, ok := h.GetLastRollbackSnapshot(true)
	assert.False(t, ok)
}

func TestClearEmptiesBothViews(t *testing.T) {
	h := history.New()
	palette := compatiblePalette(1)
	g := grid.New(1, 1, palette)
	p := model.Point{X: 0, Y: 0}

	g.Place(p, palette[0])
	h.AddStep(g, model.ActionPlace, p, true, []int{0}, palette[0])

	h.Clear()
	assert.Equal(t, 0, h.Steps())
	assert.False(t, h.HasRollbackable())
	assert.Empty(t, h.Log())
}
