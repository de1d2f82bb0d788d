// Package journal keeps an append-only history of focus sessions and task
// completions in SQLite. It is a best-effort observability record: callers
// treat a nil journal as "history disabled" and skip it.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFilename = "journal.db"

// Kind identifies what a journal entry records
type Kind string

const (
	KindFocusSession  Kind = "focus_session"
	KindTaskCompleted Kind = "task_completed"
)

// Entry is one recorded event
type Entry struct {
	ID         int64
	Kind       Kind
	Label      string
	OccurredAt time.Time
}

// Journal wraps the SQLite history database
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database under the state directory
func Open(statePath string) (*Journal, error) {
	dbPath := filepath.Join(statePath, dbFilename)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return j, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			kind        TEXT NOT NULL,
			label       TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_kind_time ON entries(kind, occurred_at);
	`)
	return err
}

// Record appends an entry stamped with the current time
func (j *Journal) Record(kind Kind, label string) error {
	return j.RecordAt(kind, label, time.Now())
}

// RecordAt appends an entry with an explicit timestamp
func (j *Journal) RecordAt(kind Kind, label string, at time.Time) error {
	_, err := j.db.Exec(
		"INSERT INTO entries (kind, label, occurred_at) VALUES (?, ?, ?)",
		string(kind), label, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}
	return nil
}

// CountToday returns how many entries of the given kind fall between the
// local midnight boundaries around now.
func (j *Journal) CountToday(kind Kind, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int
	err := j.db.QueryRow(
		"SELECT COUNT(*) FROM entries WHERE kind = ? AND occurred_at >= ? AND occurred_at < ?",
		string(kind), dayStart.UTC(), dayEnd.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// Recent returns the newest entries, most recent first
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		"SELECT id, kind, label, occurred_at FROM entries ORDER BY occurred_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Label, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Kind = Kind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
