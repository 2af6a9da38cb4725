// Package history implements the append-only per-step snapshot log and its
// LIFO rollback-pop view (§4.4), grounded on
// original_source/project/wfc/history.py.
package history

import (
	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
)

// History maintains two logical sequences sharing append but differing in
// consumption: a full log (never shrunk by rollback) and a rollback stack
// (shrunk by Pop). A rollback consumes one entry from the rollback stack
// per undone step (§4.4).
type History struct {
	full     []model.Snapshot
	rollback []model.Snapshot
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// Log returns the full append-only log, never mutated by rollback pops.
func (h *History) Log() []model.Snapshot {
	return h.full
}

// Steps reports how many snapshots have been appended.
func (h *History) Steps() int {
	return len(h.full)
}

// AddStep appends a Snapshot capturing the post-step grid state. If
// chosenPoint has no value (a terminal step with no acted-upon point), no
// snapshot is appended. Only a successful PLACE (chosenPattern != nil)
// enters the rollback stack: ROLLBACK steps and failed attempts (no
// pattern actually placed) have nothing of their own to undo (§4.4).
func (h *History) AddStep(g *grid.Grid, action model.ActionType, chosenPoint model.Point, hasChosenPoint bool, possiblePatternUIDs []int, chosenPattern *model.MetaPattern) {
	if !hasChosenPoint {
		return
	}

	snap := model.Snapshot{
		StepNumber:          len(h.full),
		Action:              action,
		ActionPoint:         chosenPoint,
		GridState:           g.Snapshot(),
		PossiblePatternUIDs: possiblePatternUIDs,
		ChosenPatternUID:    model.HiddenUID,
	}
	if chosenPattern != nil {
		snap.ChosenPatternUID = chosenPattern.UID
		snap.ChosenPatternWalkable = chosenPattern.IsWalkable
	}

	h.full = append(h.full, snap)
	if action == model.ActionPlace && chosenPattern != nil {
		h.rollback = append(h.rollback, snap)
	}
}

// GetLastRollbackSnapshot returns the most recent PLACE snapshot available
// for rollback; if pop is true it is removed from the rollback view (but
// remains in the full log).
func (h *History) GetLastRollbackSnapshot(pop bool) (model.Snapshot, bool) {
	if len(h.rollback) == 0 {
		return model.Snapshot{}, false
	}
	last := h.rollback[len(h.rollback)-1]
	if pop {
		h.rollback = h.rollback[:len(h.rollback)-1]
	}
	return last, true
}

// HasRollbackable reports whether the rollback stack holds at least one
// snapshot — the judge is consulted only when this is true (§4.3).
func (h *History) HasRollbackable() bool {
	return len(h.rollback) > 0
}

// Clear empties both the full log and the rollback view (§4.4).
func (h *History) Clear() {
	h.full = nil
	h.rollback = nil
}
