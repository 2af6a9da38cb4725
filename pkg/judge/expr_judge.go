package judge

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
)

// ExprJudge is a rule-scripted judge: a compiled boolean expr-lang
// expression, evaluated over features extracted from the grid's entropy
// field, decides whether to roll back one step. This mirrors §4.3's "ML
// judges: decision as a function of features extracted from the grid's
// entropy field and walkability map" without an ML runtime — the features
// are computed here and handed to the expression instead of a model.
//
// Exposed fields: entropy_min, entropy_max, entropy_avg (over non-collapsed
// cells), collapsed_ratio, width, height.
type ExprJudge struct {
	program *vm.Program
	Penalty int
}

// NewExprJudge compiles expression, e.g. "entropy_avg < 1.5 && collapsed_ratio < 0.9".
func NewExprJudge(expression string, penalty int) (*ExprJudge, error) {
	env := map[string]interface{}{
		"entropy_min":     0,
		"entropy_max":     0,
		"entropy_avg":     0.0,
		"collapsed_ratio": 0.0,
		"width":           0,
		"height":          0,
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("judge: compile expression: %w", err)
	}
	return &ExprJudge{program: program, Penalty: penalty}, nil
}

func (j *ExprJudge) Decide(g *grid.Grid) Decision {
	env := gridFeatures(g)

	out, err := expr.Run(j.program, env)
	if err != nil {
		return ContinueDecision()
	}

	shouldRollback, ok := out.(bool)
	if !ok || !shouldRollback {
		return ContinueDecision()
	}
	return RollbackDecision(1)
}

func (j *ExprJudge) RollbackPenalty() int { return j.Penalty }

func gridFeatures(g *grid.Grid) map[string]interface{} {
	total := g.Height * g.Width
	collapsed := 0
	minE, maxE := -1, 0
	sum := 0
	samples := 0

	for x := 0; x < g.Height; x++ {
		for y := 0; y < g.Width; y++ {
			p := model.Point{X: x, Y: y}
			if g.At(p) != nil {
				collapsed++
				continue
			}
			e := g.EntropyAt(p)
			if minE == -1 || e < minE {
				minE = e
			}
			if e > maxE {
				maxE = e
			}
			sum += e
			samples++
		}
	}

	avg := 0.0
	if samples > 0 {
		avg = float64(sum) / float64(samples)
	}
	if minE == -1 {
		minE = 0
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(collapsed) / float64(total)
	}

	return map[string]interface{}{
		"entropy_min":     minE,
		"entropy_max":     maxE,
		"entropy_avg":     avg,
		"collapsed_ratio": ratio,
		"width":           g.Width,
		"height":          g.Height,
	}
}
