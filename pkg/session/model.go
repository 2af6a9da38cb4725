// Package session persists a generation's final outcome and step count to
// Postgres via bun, for callers who want an audit trail of past runs
// instead of (or alongside) the in-memory history.History. Grounded on
// smilemakc-mbflow's internal/db mixins.go (UUIDPk/TimeStamped shape).
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is one completed (or failed) generation run. ID and CreatedAt are
// pointers with nullzero tags so bun omits them from the generated INSERT
// column list when unset, letting Postgres apply their column defaults
// instead of every unset Record colliding on the same zero-value id.
type Record struct {
	bun.BaseModel `bun:"table:wfc_sessions,alias:s"`

	ID            *uuid.UUID `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()"`
	Height        int        `bun:"height,notnull"`
	Width         int        `bun:"width,notnull"`
	Seed          int64      `bun:"seed,notnull"`
	JudgeID       string     `bun:"judge_id,notnull"`
	AdvisorID     string     `bun:"advisor_id,notnull"`
	Steps         int        `bun:"steps,notnull"`
	RollbackCount int        `bun:"rollback_count,notnull"`
	Outcome       string     `bun:"outcome,notnull"`
	Collapsed     bool       `bun:"collapsed,notnull"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// TableName returns the table name for Record.
func (Record) TableName() string {
	return "wfc_sessions"
}
