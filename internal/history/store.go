// Package history keeps a ledger of export runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

// Stage is the recorded outcome of one pipeline stage.
type Stage struct {
	Name       string `json:"name"`
	Result     string `json:"result"`
	Changed    bool   `json:"changed"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Run is one recorded export run.
type Run struct {
	ID        string
	Project   string
	Outcome   string
	StartedAt time.Time
	Duration  time.Duration
	Error     string
	Stages    []Stage
}

// Store is a SQLite-backed run ledger.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the ledger at dbPath. Use ":memory:" for an
// in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "create history directory").
				WithContext("path", dbPath).Build()
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "open sqlite database").
			WithContext("path", dbPath).Build()
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryInternal, "initialize schema").
			WithContext("path", dbPath).Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		project TEXT NOT NULL,
		outcome TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT,
		stages BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a finished run.
func (s *Store) Append(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stages, err := json.Marshal(run.Stages)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal stages").Build()
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (id, project, outcome, started_at, duration_ms, error, stages) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Project, run.Outcome, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Error, stages,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "insert run").WithContext("run_id", run.ID).Build()
	}
	return nil
}

// Recent returns up to limit runs, newest first. An empty project matches
// every project.
func (s *Store) Recent(ctx context.Context, project string, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, project, outcome, started_at, duration_ms, error, stages FROM runs WHERE (? = '' OR project = ?) ORDER BY seq DESC LIMIT ?",
		project, project, limit,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "query runs").Build()
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedMS  int64
			durationMS int64
			errText    sql.NullString
			stages     []byte
		)
		if err := rows.Scan(&r.ID, &r.Project, &r.Outcome, &startedMS, &durationMS, &errText, &stages); err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "scan run").Build()
		}
		r.StartedAt = time.UnixMilli(startedMS)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Error = errText.String
		if err := json.Unmarshal(stages, &r.Stages); err != nil {
			return nil, errors.WrapError(err, errors.CategoryMalformedData, "unmarshal stages").
				WithContext("run_id", r.ID).Build()
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "iterate rows").Build()
	}
	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
