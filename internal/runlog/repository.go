// Package runlog keeps a local SQLite journal of dashboard runs.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/sysdash/internal/database"
)

// Repository defines the persistence interface for run records.
type Repository interface {
	Save(run *Run) error
	List(limit int) ([]Run, error)
	ListByState(state string, limit int) ([]Run, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the run journal at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("runlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("runlog: %w", err)
	}

	r := &SQLiteRepository{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS runs (
            id              INTEGER PRIMARY KEY AUTOINCREMENT,
            started_at      TEXT    NOT NULL,
            finished_at     TEXT    NOT NULL,
            state           TEXT    NOT NULL,
            interval_ms     INTEGER NOT NULL DEFAULT 0,
            max_cycles      INTEGER NOT NULL DEFAULT 0,
            cycles          INTEGER NOT NULL DEFAULT 0,
            sample_failures INTEGER NOT NULL DEFAULT 0,
            append_failures INTEGER NOT NULL DEFAULT 0,
            alerts_raised   INTEGER NOT NULL DEFAULT 0,
            mount_point     TEXT    NOT NULL DEFAULT '',
            report_path     TEXT    NOT NULL DEFAULT ''
        );
        CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
        CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);
        CREATE INDEX IF NOT EXISTS idx_runs_state ON runs(state);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("runlog: migration failed: %w", err)
	}
	return nil
}

// Save inserts a run. A zero FinishedAt is set to now, and a zero
// StartedAt to FinishedAt.
func (r *SQLiteRepository) Save(run *Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = r.now().UTC()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}

	result, err := r.db.Exec(`
        INSERT INTO runs (started_at, finished_at, state, interval_ms, max_cycles, cycles,
                          sample_failures, append_failures, alerts_raised, mount_point, report_path)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(run.StartedAt), formatTime(run.FinishedAt), run.State, run.IntervalMs,
		run.MaxCycles, run.Cycles, run.SampleFailures, run.AppendFailures, run.AlertsRaised,
		run.MountPoint, run.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("runlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("runlog: failed to get last insert ID: %w", err)
	}
	run.ID = id
	return nil
}

const selectColumns = `
        SELECT id, started_at, finished_at, state, interval_ms, max_cycles, cycles,
               sample_failures, append_failures, alerts_raised, mount_point, report_path
        FROM runs`

// List returns the most recent n runs, newest first.
func (r *SQLiteRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(selectColumns+` ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByState returns the most recent n runs that ended in state.
func (r *SQLiteRepository) ListByState(state string, limit int) ([]Run, error) {
	rows, err := r.db.Query(selectColumns+` WHERE state = ? ORDER BY started_at DESC, id DESC LIMIT ?`, state, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes runs that finished more than olderThan ago.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := formatTime(r.now().Add(-olderThan))
	result, err := r.db.Exec(`DELETE FROM runs WHERE finished_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("runlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Timestamps are stored in a fixed-width UTC layout so string comparison in
// SQL orders them chronologically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func scanRows(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		var startedStr, finishedStr string
		err := rows.Scan(
			&run.ID, &startedStr, &finishedStr, &run.State, &run.IntervalMs, &run.MaxCycles,
			&run.Cycles, &run.SampleFailures, &run.AppendFailures, &run.AlertsRaised,
			&run.MountPoint, &run.ReportPath,
		)
		if err != nil {
			return nil, fmt.Errorf("runlog: scan failed: %w", err)
		}
		run.StartedAt, _ = time.Parse(storedTimeLayout, startedStr)
		run.FinishedAt, _ = time.Parse(storedTimeLayout, finishedStr)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
