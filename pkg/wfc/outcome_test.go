package wfc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eng618/wfc-loom/pkg/model"
	"github.com/eng618/wfc-loom/pkg/wfc"
)

func TestOutcomeTerminal(t *testing.T) {
	terminal := []wfc.Outcome{
		wfc.OutcomeCollapsed,
		wfc.OutcomeZeroChoice,
		wfc.OutcomeZeroEntropy,
		wfc.OutcomeJudgeError,
		wfc.OutcomeJudgeStopped,
		wfc.OutcomeRollbackLimitExceeded,
	}
	for _, o := range terminal {
		assert.True(t, o.Terminal(), "%s should be terminal", o)
	}
	assert.False(t, wfc.OutcomeNone.Terminal())
}

func TestOutcomeErrorMessageWithAndWithoutPoint(t *testing.T) {
	withPoint := &wfc.OutcomeError{Outcome: wfc.OutcomeZeroChoice, Point: model.Point{X: 1, Y: 2}, HasPoint: true}
	assert.Contains(t, withPoint.Error(), "ZERO_CHOICE")
	assert.Contains(t, withPoint.Error(), "1")

	withoutPoint := &wfc.OutcomeError{Outcome: wfc.OutcomeRollbackLimitExceeded}
	assert.Equal(t, "wfc: ROLLBACK_LIMIT_EXCEEDED", withoutPoint.Error())
}
