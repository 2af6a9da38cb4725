package model

// ActionType tags whether a Snapshot records a placement or a rollback,
// grounded on original_source/project/wfc/history.py's ActionType StrEnum.
type ActionType int

const (
	ActionPlace ActionType = iota
	ActionRollback
)

func (a ActionType) String() string {
	if a == ActionRollback {
		return "rollback"
	}
	return "place"
}

// CellState captures one grid cell's entropy/walkability/uid at the moment
// a Snapshot was taken. PatternUID is HiddenUID for an empty cell.
type CellState struct {
	Entropy    int
	IsWalkable bool
	PatternUID int
}

// GridState is a flattened, row-major copy of every cell in the grid at
// snapshot time (§3's "grid_state").
type GridState struct {
	Width  int
	Height int
	Cells  []CellState // row-major: index = x*Width + y
}

// At returns the CellState for (x, y).
func (g GridState) At(x, y int) CellState {
	return g.Cells[x*g.Width+y]
}

// Snapshot is one immutable entry in the History append-only log (§3).
type Snapshot struct {
	StepNumber           int
	Action               ActionType
	ActionPoint          Point
	GridState            GridState
	PossiblePatternUIDs  []int
	ChosenPatternUID     int // HiddenUID if no pattern was chosen (rollback entries)
	ChosenPatternWalkable bool
}
