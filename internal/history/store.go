package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one finished trim run.
type Record struct {
	ID             int64
	RunID          string
	InputPath      string
	OutputPath     string
	Mode           string
	State          string
	KeepCount      int
	DiscardCount   int
	InputBytes     int64
	OutputBytes    int64
	RemovedSeconds float64
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Store persists the run ledger in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	input_path TEXT NOT NULL,
	output_path TEXT NOT NULL,
	mode TEXT NOT NULL,
	state TEXT NOT NULL,
	keep_count INTEGER NOT NULL,
	discard_count INTEGER NOT NULL,
	input_bytes INTEGER NOT NULL,
	output_bytes INTEGER NOT NULL,
	removed_seconds REAL NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);
`

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Append records a finished run.
func (s *Store) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (run_id, input_path, output_path, mode, state, keep_count, discard_count,
	input_bytes, output_bytes, removed_seconds, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.InputPath, rec.OutputPath, rec.Mode, rec.State,
		rec.KeepCount, rec.DiscardCount, rec.InputBytes, rec.OutputBytes,
		rec.RemovedSeconds,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	return nil
}

// Recent returns the most recently finished runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, run_id, input_path, output_path, mode, state, keep_count, discard_count,
	input_bytes, output_bytes, removed_seconds, started_at, finished_at
FROM runs ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var started, finished string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.InputPath, &rec.OutputPath,
			&rec.Mode, &rec.State, &rec.KeepCount, &rec.DiscardCount,
			&rec.InputBytes, &rec.OutputBytes, &rec.RemovedSeconds,
			&started, &finished); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return records, nil
}
