// Package judge implements the pluggable continue/rollback/stop arbitration
// policy (§4.3): at each step where the history holds a rollback-able
// placement, the Judge is consulted for a Decision.
package judge

import (
	"math/rand"

	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/rngutil"
)

// DecisionType tags a Judge's verdict, grounded on
// original_source/project/wfc/judge.py's DecisionType StrEnum.
type DecisionType int

const (
	Continue DecisionType = iota
	Rollback
	Stop
)

func (t DecisionType) String() string {
	switch t {
	case Rollback:
		return "rollback"
	case Stop:
		return "stop"
	default:
		return "continue"
	}
}

// Decision is the tagged variant a Judge emits: CONTINUE, ROLLBACK(steps),
// or STOP(reason) (§4.3).
type Decision struct {
	Type   DecisionType
	Steps  int    // valid when Type == Rollback; steps >= 1
	Reason string // valid when Type == Stop
}

// ContinueDecision is the zero-value CONTINUE decision.
func ContinueDecision() Decision { return Decision{Type: Continue} }

// RollbackDecision requests undoing up to steps placements.
func RollbackDecision(steps int) Decision {
	if steps < 1 {
		steps = 1
	}
	return Decision{Type: Rollback, Steps: steps}
}

// StopDecision requests the generation stop with the given reason.
func StopDecision(reason string) Decision {
	return Decision{Type: Stop, Reason: reason}
}

// Judge decides whether the collapse loop should continue, roll back, or
// stop. It also carries an integer RollbackPenalty (§4.5): > 0 enables the
// per-cell tabu that prevents an immediate re-collapse to the pattern that
// was just rolled back.
type Judge interface {
	Decide(g *grid.Grid) Decision
	RollbackPenalty() int
}

// AlwaysContinueJudge always returns CONTINUE.
type AlwaysContinueJudge struct {
	Penalty int
}

// NewAlwaysContinueJudge returns a Judge that never intervenes.
func NewAlwaysContinueJudge() *AlwaysContinueJudge {
	return &AlwaysContinueJudge{}
}

func (j *AlwaysContinueJudge) Decide(g *grid.Grid) Decision { return ContinueDecision() }
func (j *AlwaysContinueJudge) RollbackPenalty() int         { return j.Penalty }

// RandomJudge rolls back one step with probability p, else continues
// (§4.3), grounded on original_source/project/wfc/judge.py's RandomJudge.
type RandomJudge struct {
	rng     *rand.Rand
	chance  float64
	Penalty int
}

// NewRandomJudge returns a RandomJudge with the given rollback probability
// and seed.
func NewRandomJudge(seed int64, rollbackChance float64) *RandomJudge {
	return &RandomJudge{rng: rngutil.New(seed), chance: rollbackChance}
}

func (j *RandomJudge) Decide(g *grid.Grid) Decision {
	if j.rng.Float64() < j.chance {
		return RollbackDecision(1)
	}
	return ContinueDecision()
}

func (j *RandomJudge) RollbackPenalty() int { return j.Penalty }
