package judge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/judge"
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

func TestNewExprJudgeCompileError(t *testing.T) {
	_, err := judge.NewExprJudge("not valid !!! syntax", 0)
	assert.Error(t, err)
}

func TestExprJudgeRollsBackWhenExpressionTrue(t *testing.T) {
	j, err := judge.NewExprJudge("collapsed_ratio == 0", 3)
	require.NoError(t, err)

	g := grid.New(2, 2, compatiblePalette(2))
	d := j.Decide(g)

	assert.Equal(t, judge.Rollback, d.Type)
	assert.Equal(t, 3, j.RollbackPenalty())
}

func TestExprJudgeContinuesWhenExpressionFalse(t *testing.T) {
	j, err := judge.NewExprJudge("collapsed_ratio > 0.5", 0)
	require.NoError(t, err)

	g := grid.New(2, 2, compatiblePalette(2))
	d := j.Decide(g)

	assert.Equal(t, judge.Continue, d.Type)
}

func TestExprJudgeReactsToCollapsedRatio(t *testing.T) {
	j, err := judge.NewExprJudge("collapsed_ratio >= 0.99", 0)
	require.NoError(t, err)

	palette := compatiblePalette(2)
	g := grid.New(1, 1, palette)
	g.Place(model.Point{X: 0, Y: 0}, palette[0])

	d := j.Decide(g)
	assert.Equal(t, judge.Rollback, d.Type)
}

func TestExprJudgeWidthHeightVisible(t *testing.T) {
	j, err := judge.NewExprJudge("width == 3 && height == 2", 0)
	require.NoError(t, err)

	g := grid.New(2, 3, compatiblePalette(1))
	d := j.Decide(g)
	assert.Equal(t, judge.Rollback, d.Type)
}
