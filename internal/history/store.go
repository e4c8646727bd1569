// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of the summaries xcsummary has
// produced, one row per bundle read. Rows are listed as recorded; the log
// never merges or aggregates runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/xcsummary/pkg/types"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = ".xcsummary/history.db"

const defaultLimit = 20

// Entry is one recorded summary.
type Entry struct {
	ID         int64             `json:"id" yaml:"id"`
	RecordedAt time.Time         `json:"recorded_at" yaml:"recorded_at"`
	Label      string            `json:"label" yaml:"label"`
	Bundle     string            `json:"bundle" yaml:"bundle"`
	Summary    types.TestSummary `json:"summary" yaml:"summary"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at TEXT NOT NULL,
			label TEXT NOT NULL,
			bundle TEXT NOT NULL,
			result TEXT NOT NULL,
			total INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			title TEXT,
			environment TEXT,
			failures TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_bundle ON runs(bundle)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e and returns its row ID. A zero RecordedAt is replaced by
// the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	failuresJSON, err := json.Marshal(e.Summary.FailureNames())
	if err != nil {
		return 0, fmt.Errorf("marshaling failures: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (recorded_at, label, bundle, result, total, passed, failed, skipped, title, environment, failures)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RecordedAt.UTC().Format(time.RFC3339Nano), e.Label, e.Bundle,
		e.Summary.Result, e.Summary.Total, e.Summary.Passed, e.Summary.Failed, e.Summary.Skipped,
		nullable(e.Summary.Title), nullable(e.Summary.Environment), string(failuresJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, label, bundle, result, total, passed, failed, skipped, title, environment, failures
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e            Entry
			recordedAt   string
			title, env   sql.NullString
			failuresJSON string
		)
		if err := rows.Scan(&e.ID, &recordedAt, &e.Label, &e.Bundle,
			&e.Summary.Result, &e.Summary.Total, &e.Summary.Passed, &e.Summary.Failed, &e.Summary.Skipped,
			&title, &env, &failuresJSON); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parsing recorded_at of run %d: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(failuresJSON), &e.Summary.Failures); err != nil {
			return nil, fmt.Errorf("decoding failures of run %d: %w", e.ID, err)
		}
		e.Summary.Title = fromNullable(title)
		e.Summary.Environment = fromNullable(env)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
