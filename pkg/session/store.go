package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/eng618/wfc-loom/pkg/wfc"
	"github.com/eng618/wfc-loom/pkg/wfclog"
)

// Config holds the Postgres connection settings for a Store.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sane pool defaults for a small CLI tool, not a
// server under sustained load.
func DefaultConfig() *Config {
	return &Config{
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}

// Store persists Records to Postgres via bun.
type Store struct {
	db *bun.DB
}

// Open connects to Postgres per cfg and registers the Record model.
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(30*time.Second),
		pgdriver.WithDialTimeout(10*time.Second),
	)
	sqldb := sql.OpenDB(connector)
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*Record)(nil))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("session: ping database: %w", err)
	}

	wfclog.Info("session store connected")
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTable issues the DDL for the wfc_sessions table (if it does not
// exist yet), used by cmd/rollbackstats for first-run setup instead of a
// migration tool.
func (s *Store) CreateTable(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("session: create table: %w", err)
	}
	return nil
}

// RecordRun stores the outcome of one Engine.Generate call.
func (s *Store) RecordRun(ctx context.Context, eng *wfc.Engine, seed int64, judgeID, advisorID string, collapsed bool, outcome string) (*Record, error) {
	rec := &Record{
		Height:        eng.Grid.Height,
		Width:         eng.Grid.Width,
		Seed:          seed,
		JudgeID:       judgeID,
		AdvisorID:     advisorID,
		Steps:         eng.History.Steps(),
		RollbackCount: eng.RollbackCount,
		Outcome:       outcome,
		Collapsed:     collapsed,
	}

	if _, err := s.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		return nil, fmt.Errorf("session: insert record: %w", err)
	}
	return rec, nil
}

// Recent returns the most recent n records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	var records []Record
	err := s.db.NewSelect().Model(&records).OrderExpr("created_at DESC").Limit(n).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("session: select recent: %w", err)
	}
	return records, nil
}
