package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a ValueLog kept in an in-memory SQLite database.
//
// An in-memory database lives exactly as long as its connection, so the
// pool is pinned to a single connection that is never recycled.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a private in-memory database and creates the schema.
func NewSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database, discarding its contents.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS broadcast_values (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		value       INTEGER NOT NULL CHECK (value >= 0 AND value <= 4294967295),
		recorded_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts v as the newest row. Row order is arrival order.
func (s *SQLite) Append(v uint32) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO broadcast_values (value, recorded_at) VALUES (?, ?)`,
			int64(v), now,
		)
		return err
	})
}

// Values returns every row value ordered by insertion.
func (s *SQLite) Values() ([]uint32, error) {
	rows, err := s.db.Query(`SELECT value FROM broadcast_values ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []uint32{}
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, uint32(v))
	}
	return values, rows.Err()
}

// Len counts the recorded rows.
func (s *SQLite) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM broadcast_values`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
