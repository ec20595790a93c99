// Package runs keeps a history of pipeline stage outcomes.
package runs

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned when no run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

// RunStore records pipeline stage outcomes using SQLite.
type RunStore struct {
	db *sql.DB
}

// Run is the outcome of a single pipeline stage.
type Run struct {
	RunID      uuid.UUID `json:"run_id"`
	Stage      string    `json:"stage"`  // "scrape" or "filter"
	Status     string    `json:"status"` // "written", "skipped", "missing_input", "failed"
	Path       string    `json:"path"`
	Pages      int       `json:"pages"`
	Entries    int       `json:"entries"`
	Error      *string   `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the stage took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunFilter represents filtering options for listing runs.
type RunFilter struct {
	Stage *string // Filter by stage
	Limit int     // Zero means no limit
}

// NewRunStore creates a new run store with the given database path.
func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &RunStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the runs table if it doesn't exist.
func (s *RunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		stage TEXT NOT NULL,
		status TEXT NOT NULL,
		path TEXT NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0,
		entries INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Record stores a run. A run without an ID is given a new one.
func (s *RunStore) Record(run *Run) error {
	if run.RunID == uuid.Nil {
		run.RunID = uuid.New()
	}

	query := `
		INSERT INTO runs (
			run_id, stage, status, path, pages, entries,
			error, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.RunID.String(),
		run.Stage,
		run.Status,
		run.Path,
		run.Pages,
		run.Entries,
		run.Error,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// List returns runs, most recent first.
func (s *RunStore) List(filter RunFilter) ([]Run, error) {
	query := `
		SELECT run_id, stage, status, path, pages, entries,
		       error, started_at, finished_at
		FROM runs
	`

	var whereClauses []string
	var args []any

	if filter.Stage != nil {
		whereClauses = append(whereClauses, "stage = ?")
		args = append(args, *filter.Stage)
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY seq DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// Last returns the most recent run of stage.
func (s *RunStore) Last(stage string) (*Run, error) {
	runs, err := s.List(RunFilter{Stage: &stage, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var runIDStr, stage, status, path, startedAtStr, finishedAtStr string
	var pages, entries int
	var runErr sql.NullString

	err := rows.Scan(
		&runIDStr, &stage, &status, &path, &pages, &entries,
		&runErr, &startedAtStr, &finishedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	runID, err := uuid.Parse(runIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid run_id %q: %w", runIDStr, err)
	}

	run := &Run{
		RunID:      runID,
		Stage:      stage,
		Status:     status,
		Path:       path,
		Pages:      pages,
		Entries:    entries,
		StartedAt:  parseTime(startedAtStr),
		FinishedAt: parseTime(finishedAtStr),
	}
	if runErr.Valid {
		run.Error = &runErr.String
	}

	return run, nil
}

func formatTime(t time.Time) string {
	// Strip monotonic clock for consistent storage and comparisons
	return t.Truncate(0).UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t
}
