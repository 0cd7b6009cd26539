package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite-backed persistence for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is a row of the runs table.
type RunRecord struct {
	ID         string
	Name       string
	LogPath    string
	Status     string
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
	Error      string
}

// NewStore opens the SQLite database at dbPath and creates the runs table
// if it does not exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		log_path TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		duration_ms INTEGER DEFAULT 0,
		error TEXT
	);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordStart inserts a row for sess with status "running".
func (s *Store) RecordStart(sess *RunSession) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, name, log_path, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Name, sess.LogPath, StatusRunning, sess.Start,
	)
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}
	return nil
}

// RecordEnd updates the row for sess with its final status, end time and
// duration. runErr may be nil; when set, its message is stored and the
// status becomes failed.
func (s *Store) RecordEnd(sess *RunSession, runErr error) error {
	status := StatusCompleted
	errText := ""
	if runErr != nil {
		status = StatusFailed
		errText = runErr.Error()
	}

	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, ended_at = ?, duration_ms = ?, error = ? WHERE id = ?`,
		status, sess.End, sess.Duration().Milliseconds(), errText, sess.ID,
	)
	if err != nil {
		return fmt.Errorf("record run end: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first. limit <= 0 means
// no limit.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	query := `SELECT id, name, log_path, status, started_at,
		COALESCE(ended_at, started_at), duration_ms, COALESCE(error, '')
		FROM runs ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.LogPath, &r.Status,
			&r.StartedAt, &r.EndedAt, &r.DurationMs, &r.Error); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return records, nil
}
