// Package history persists a journal of completed moves so users can
// audit what FileNest did and when.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rizirfan/FileNest/filenest/organize"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS moves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_path TEXT NOT NULL,
	target_path TEXT NOT NULL,
	category TEXT NOT NULL,
	dry_run INTEGER NOT NULL DEFAULT 0,
	moved_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_moved_at ON moves(moved_at DESC);
`

// Store is a SQLite-backed move journal. It implements organize.Recorder.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
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

	return &Store{db: db, path: dbPath}, nil
}

// RecordMove appends one move to the journal. Dry-run moves are recorded
// too, flagged, so a preview leaves an audit trail without claiming real
// relocations happened.
func (s *Store) RecordMove(ctx context.Context, record organize.MoveRecord) error {
	dryRun := 0
	if record.DryRun {
		dryRun = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moves (source_path, target_path, category, dry_run, moved_at)
		 VALUES (?, ?, ?, ?, ?)`,
		record.SourcePath, record.TargetPath, record.Category, dryRun, record.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	return nil
}

// RecentMoves returns up to limit journal entries, newest first.
func (s *Store) RecentMoves(ctx context.Context, limit int) ([]organize.MoveRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, target_path, category, dry_run, moved_at
		 FROM moves ORDER BY moved_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var records []organize.MoveRecord
	for rows.Next() {
		var rec organize.MoveRecord
		var dryRun int
		var movedAt time.Time
		if err := rows.Scan(&rec.SourcePath, &rec.TargetPath, &rec.Category, &dryRun, &movedAt); err != nil {
			return nil, fmt.Errorf("scan move row: %w", err)
		}
		rec.DryRun = dryRun != 0
		rec.Timestamp = movedAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate move rows: %w", err)
	}
	return records, nil
}

// Count returns the total number of journal entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM moves`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count moves: %w", err)
	}
	return n, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
