// Package wfc is the collapse-loop orchestrator (§4.5): cell selection,
// pattern placement via the Advisor, continue/rollback/stop arbitration via
// the Judge, and the rollback budget. Grounded on the teacher's
// pkg/generator/generator.go top-level Generate orchestration and
// original_source/project/wfc/wfc.go.
package wfc

import (
	"context"
	"math"
	"sort"

	"github.com/eng618/wfc-loom/pkg/advisor"
	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/history"
	"github.com/eng618/wfc-loom/pkg/judge"
	"github.com/eng618/wfc-loom/pkg/model"
	"github.com/eng618/wfc-loom/pkg/telemetry"
)

// UnboundedRollbacks, passed as MaxRollbacks in EngineConfig, disables the
// rollback budget cap entirely (§4.5's "caller-supplied sentinel").
const UnboundedRollbacks = -1

// StepResult is the outcome of a single Step call, supplemented from
// original_source/project/wfc/step_result.py (the distilled spec describes
// add_step's inputs but not this carrier type explicitly).
type StepResult struct {
	Outcome  Outcome
	Success  bool
	Action   model.ActionType
	Point    model.Point
	HasPoint bool

	Candidates    []int // uids considered at Point, uid-sorted
	ChosenPattern *model.MetaPattern

	FailedPoint    model.Point
	HasFailedPoint bool
}

// EngineConfig configures a new Engine.
type EngineConfig struct {
	Height  int
	Width   int
	Palette []*model.MetaPattern
	Judge   judge.Judge
	Advisor advisor.Advisor

	// MaxRollbacks: nil uses the §4.5 default floor(sqrt(width*height));
	// a pointer to UnboundedRollbacks disables the cap.
	MaxRollbacks *int
}

// Engine is the WFC orchestrator: grid, judge, advisor, history,
// rollback_count, max_rollbacks, initialized (§4.5's state list).
type Engine struct {
	Grid    *grid.Grid
	Judge   judge.Judge
	Advisor advisor.Advisor
	History *history.History
	Palette []*model.MetaPattern

	RollbackCount int
	MaxRollbacks  int // UnboundedRollbacks disables the cap

	initialized bool
}

// NewEngine constructs an Engine over a fresh Grid sized height x width.
func NewEngine(cfg EngineConfig) *Engine {
	max := defaultMaxRollbacks(cfg.Height, cfg.Width)
	if cfg.MaxRollbacks != nil {
		max = *cfg.MaxRollbacks
	}

	return &Engine{
		Grid:         grid.New(cfg.Height, cfg.Width, cfg.Palette),
		Judge:        cfg.Judge,
		Advisor:      cfg.Advisor,
		History:      history.New(),
		Palette:      cfg.Palette,
		MaxRollbacks: max,
	}
}

func defaultMaxRollbacks(height, width int) int {
	return int(math.Floor(math.Sqrt(float64(height * width))))
}

// reinitialize resets the grid and history at the start of a generation, or
// lazily on the first standalone Step call (§4.5).
func (e *Engine) reinitialize() {
	e.Grid.Initialize()
	e.History.Clear()
	e.RollbackCount = 0
	e.initialized = true
}

// Step performs one unit of work; exactly one of the §4.5 branches runs.
func (e *Engine) Step(ctx context.Context, earlyStopping bool) StepResult {
	if !e.initialized {
		e.reinitialize()
	}

	stepNumber := e.History.Steps()
	result := StepResult{Action: model.ActionPlace}
	defer func() {
		e.History.AddStep(e.Grid, result.Action, result.Point, result.HasPoint, result.Candidates, result.ChosenPattern)
	}()
	defer func() {
		point := ""
		if result.HasPoint {
			point = result.Point.String()
		}
		telemetry.RecordStep(ctx, stepNumber, result.Action.String(), string(result.Outcome), point)
	}()

	// 1. rollback budget.
	if e.MaxRollbacks != UnboundedRollbacks && e.RollbackCount >= e.MaxRollbacks {
		result.Outcome = OutcomeRollbackLimitExceeded
		return result
	}

	// 2. judge arbitration, only when a placement could be rolled back.
	if e.History.HasRollbackable() {
		decision := e.Judge.Decide(e.Grid)
		switch decision.Type {
		case judge.Stop:
			result.Outcome = OutcomeJudgeStopped
			return result
		case judge.Rollback:
			undone, lastPoint, hasLastPoint := e.applyRollback(decision.Steps)
			e.RollbackCount += undone
			result.Action = model.ActionRollback
			result.Success = true
			if hasLastPoint {
				result.Point = lastPoint
				result.HasPoint = true
			}
			return result
		case judge.Continue:
			// fall through to a normal collapse step.
		}
	}

	// 3. select the least-entropy cell.
	point, ok := e.Grid.FindLeastEntropyCell()
	if !ok {
		result.Outcome = OutcomeCollapsed
		result.Success = true
		return result
	}
	result.Point = point
	result.HasPoint = true

	// 4. compute valid patterns at depth 0.
	candidates := e.Grid.ValidPatterns(point)
	if len(candidates) == 0 {
		result.Outcome = OutcomeZeroChoice
		return result
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].UID < candidates[j].UID })
	result.Candidates = uidsOf(candidates)

	// 5. advisor selection.
	chosen := e.Advisor.Select(candidates, e.Grid, point)
	if chosen == nil {
		result.Outcome = OutcomeJudgeError
		return result
	}
	result.ChosenPattern = chosen

	// 6. place and propagate.
	e.Grid.Place(point, chosen)
	e.Grid.UpdateEntropy(point)

	// 7. check for a newly created contradiction.
	if zp, has := e.Grid.ZeroEntropyCell(); has {
		result.Outcome = OutcomeZeroEntropy
		result.FailedPoint = zp
		result.HasFailedPoint = true
		return result
	}

	// 8. success.
	result.Success = true
	return result
}

// applyRollback pops up to n PLACE snapshots from the rollback stack,
// applies grid.Reset to each, and — when the judge's RollbackPenalty is
// positive — forbids the undone pattern from being re-chosen at that cell
// for the remainder of the generation (§4.5). It returns how many
// placements were actually undone and the last point touched.
func (e *Engine) applyRollback(n int) (undone int, lastPoint model.Point, hasLastPoint bool) {
	penalty := 0
	if e.Judge != nil {
		penalty = e.Judge.RollbackPenalty()
	}

	for i := 0; i < n; i++ {
		snap, ok := e.History.GetLastRollbackSnapshot(true)
		if !ok {
			break
		}

		if penalty > 0 {
			e.Grid.Forbid(snap.ActionPoint, snap.ChosenPatternUID)
		}
		e.Grid.Reset(snap.ActionPoint)

		undone++
		lastPoint = snap.ActionPoint
		hasLastPoint = true
	}
	return undone, lastPoint, hasLastPoint
}

// Generate resets the grid and history, then repeatedly steps until the
// grid is collapsed, a failure outcome is returned, or the rollback budget
// is exceeded (§4.5). It returns whether the grid ended up fully collapsed.
func (e *Engine) Generate(ctx context.Context) bool {
	e.reinitialize()
	ctx, end := telemetry.StartGeneration(ctx, e.Grid.Height, e.Grid.Width)
	for {
		result := e.Step(ctx, true)
		if result.Outcome == OutcomeCollapsed {
			end(string(OutcomeCollapsed), nil)
			return true
		}
		if !result.Success {
			end(string(result.Outcome), nil)
			return false
		}
	}
}

// GenerateErr runs Generate and, on failure, returns an *OutcomeError
// describing why — the ambient error-handling surface for CLI callers that
// want errors.As instead of inspecting the bool.
func (e *Engine) GenerateErr(ctx context.Context) (bool, error) {
	e.reinitialize()
	ctx, end := telemetry.StartGeneration(ctx, e.Grid.Height, e.Grid.Width)
	for {
		result := e.Step(ctx, true)
		if result.Outcome == OutcomeCollapsed {
			end(string(OutcomeCollapsed), nil)
			return true, nil
		}
		if !result.Success {
			err := &OutcomeError{Outcome: result.Outcome, Point: result.Point, HasPoint: result.HasPoint}
			end(string(result.Outcome), err)
			return false, err
		}
	}
}

func uidsOf(patterns []*model.MetaPattern) []int {
	out := make([]int, len(patterns))
	for i, p := range patterns {
		out[i] = p.UID
	}
	return out
}
