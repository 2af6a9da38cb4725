package wfc

import (
	"fmt"

	"github.com/eng618/wfc-loom/pkg/model"
)

// Outcome is the §7 error taxonomy: the only outcomes a Step may produce.
// OutcomeNone marks a successful, non-terminal step (a placement or a
// rollback that didn't end the generation).
type Outcome string

const (
	OutcomeNone                  Outcome = ""
	OutcomeCollapsed             Outcome = "COLLAPSED"
	OutcomeZeroChoice            Outcome = "ZERO_CHOICE"
	OutcomeZeroEntropy           Outcome = "ZERO_ENTROPY"
	OutcomeJudgeError            Outcome = "JUDGE_ERROR"
	OutcomeJudgeStopped          Outcome = "JUDGE_STOPPED"
	OutcomeRollbackLimitExceeded Outcome = "ROLLBACK_LIMIT_EXCEEDED"
)

// Terminal reports whether the outcome ends generation (success or
// failure) rather than letting the loop continue to another Step.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeCollapsed, OutcomeZeroChoice, OutcomeZeroEntropy, OutcomeJudgeError, OutcomeJudgeStopped, OutcomeRollbackLimitExceeded:
		return true
	default:
		return false
	}
}

// OutcomeError wraps a non-success Outcome as an error, so callers can
// errors.As into it instead of string-matching a message — the idiomatic
// Go analogue of the original's tagged outcome enum (§7).
type OutcomeError struct {
	Outcome  Outcome
	Point    model.Point
	HasPoint bool
}

func (e *OutcomeError) Error() string {
	if e.HasPoint {
		return fmt.Sprintf("wfc: %s at %s", e.Outcome, e.Point)
	}
	return fmt.Sprintf("wfc: %s", e.Outcome)
}
