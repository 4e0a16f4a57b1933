// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists agent run history to SQLite.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidRun = errors.New("run is missing required fields")
)

// =============================================================================
// OUTCOMES
// =============================================================================

// Outcome is the terminal result of a run.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// =============================================================================
// RUN RECORD
// =============================================================================

// Run is one persisted agent run.
type Run struct {
	ID              string
	Task            string
	Outcome         Outcome
	Steps           int
	EstimatedTokens int
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// =============================================================================
// STORE
// =============================================================================

// Store persists runs to a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	task             TEXT NOT NULL,
	outcome          TEXT NOT NULL,
	steps            INTEGER NOT NULL,
	estimated_tokens INTEGER NOT NULL,
	started_at       INTEGER NOT NULL,
	finished_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one terminal run.
func (s *Store) Record(run Run) error {
	if run.ID == "" || run.Task == "" || run.Outcome == "" {
		return ErrInvalidRun
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, task, outcome, steps, estimated_tokens, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Task, string(run.Outcome), run.Steps, run.EstimatedTokens,
		run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. limit <= 0 lists all.
func (s *Store) List(limit int) ([]Run, error) {
	query := `SELECT id, task, outcome, steps, estimated_tokens, started_at, finished_at
	          FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var started, finished int64
		if err := rows.Scan(&r.ID, &r.Task, &outcome, &r.Steps, &r.EstimatedTokens, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
