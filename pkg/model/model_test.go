package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eng618/wfc-loom/pkg/model"
)

func TestDirectionOppositeAndDelta(t *testing.T) {
	cases := []struct {
		d        model.Direction
		opposite model.Direction
		dx, dy   int
	}{
		{model.Up, model.Down, 1, 0},
		{model.Down, model.Up, -1, 0},
		{model.Left, model.Right, 0, 1},
		{model.Right, model.Left, 0, -1},
	}

	for _, c := range cases {
		assert.Equal(t, c.opposite, c.d.Opposite(), "opposite of %s", c.d)
		dx, dy := c.d.Delta()
		assert.Equal(t, c.dx, dx, "dx for %s", c.d)
		assert.Equal(t, c.dy, dy, "dy for %s", c.d)
	}
}

func TestParseDirection(t *testing.T) {
	d, ok := model.ParseDirection("up")
	assert.True(t, ok)
	assert.Equal(t, model.Up, d)

	_, ok = model.ParseDirection("diagonal")
	assert.False(t, ok)
}

func TestPointAddAndInBounds(t *testing.T) {
	p := model.Point{X: 2, Y: 3}
	moved := p.Add(1, -1)
	assert.Equal(t, model.Point{X: 3, Y: 2}, moved)

	assert.True(t, moved.InBounds(5, 5))
	assert.False(t, model.Point{X: -1, Y: 0}.InBounds(5, 5))
	assert.False(t, model.Point{X: 0, Y: 5}.InBounds(5, 5))
}

func TestRectCenter(t *testing.T) {
	r := model.Rect{Width: 5, Height: 5}
	assert.Equal(t, model.Point{X: 2, Y: 2}, r.Center())
	assert.Equal(t, 25, r.Area())
	assert.Len(t, r.Indices(), 25)
}

func TestRuleSetAddAllowsUIDs(t *testing.T) {
	rs := model.NewRuleSet()
	rs.Add(model.Up, 7)
	rs.Add(model.Up, 9)

	assert.True(t, rs.Allows(model.Up, 7))
	assert.False(t, rs.Allows(model.Up, 3))
	assert.ElementsMatch(t, []int{7, 9}, rs.UIDs(model.Up))
	assert.Empty(t, rs.UIDs(model.Down))
}

func TestRuleSetNilIsSafe(t *testing.T) {
	var rs *model.RuleSet
	assert.False(t, rs.Allows(model.Up, 1))
	assert.Nil(t, rs.UIDs(model.Up))
}

func TestMetaPatternHasTag(t *testing.T) {
	mp := &model.MetaPattern{Tags: map[string]struct{}{"grass": {}}}
	assert.True(t, mp.HasTag("grass"))
	assert.False(t, mp.HasTag("water"))
}
