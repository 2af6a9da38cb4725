package advisor

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
)

// ExprAdvisor is a rule-scripted advisor: a compiled expr-lang expression
// scores each candidate, and the candidate with the highest score is
// chosen (ties broken by first encountered, same as GreedyAdvisor). This is
// the core's textual stand-in for the out-of-scope ML advisors (§4.2) —
// same Advisor seam, evaluated by github.com/expr-lang/expr instead of a
// trained model.
//
// The expression sees, per candidate: uid, weight, is_walkable, tags
// (map[string]bool), point_x, point_y, grid_width, grid_height.
type ExprAdvisor struct {
	program *vm.Program
}

// NewExprAdvisor compiles expression against the candidate-scoring
// environment shape. A typical expression: "weight * (is_walkable ? 1.5 : 1.0)".
func NewExprAdvisor(expression string) (*ExprAdvisor, error) {
	env := map[string]interface{}{
		"uid":         0,
		"weight":      0.0,
		"is_walkable": false,
		"tags":        map[string]bool{},
		"point_x":     0,
		"point_y":     0,
		"grid_width":  0,
		"grid_height": 0,
	}
	program, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("advisor: compile expression: %w", err)
	}
	return &ExprAdvisor{program: program}, nil
}

// Select evaluates the expression for every candidate and returns the one
// with the highest resulting score.
func (a *ExprAdvisor) Select(candidates []*model.MetaPattern, g *grid.Grid, point model.Point) *model.MetaPattern {
	if len(candidates) == 0 {
		return nil
	}

	var best *model.MetaPattern
	bestScore := 0.0

	for _, c := range candidates {
		tags := make(map[string]bool, len(c.Tags))
		for t := range c.Tags {
			tags[t] = true
		}

		out, err := expr.Run(a.program, map[string]interface{}{
			"uid":         c.UID,
			"weight":      c.Weight,
			"is_walkable": c.IsWalkable,
			"tags":        tags,
			"point_x":     point.X,
			"point_y":     point.Y,
			"grid_width":  g.Width,
			"grid_height": g.Height,
		})
		if err != nil {
			continue
		}

		score, ok := asFloat(out)
		if !ok {
			continue
		}

		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}

	if best == nil {
		return candidates[0]
	}
	return best
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
