// Package db provides preference storage for the widget: SQLite on disk, or
// an in-memory cache when no database path is configured.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Preference keys.
const (
	KeyCurrentDay = "schedule-widget-current-day"
)

// ErrEmptyKey is returned when a preference key is blank.
var ErrEmptyKey = errors.New("preference key is required")

// opTimeout bounds the context-free Get and Set calls.
const opTimeout = 2 * time.Second

// SQLite stores preferences in a key/value table.
type SQLite struct {
	db *sql.DB
}

// New opens the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// GetPreference returns the stored value for key.
func (s *SQLite) GetPreference(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying preference %q: %w", key, err)
	}
	return value, true, nil
}

// SetPreference inserts or replaces the value for key.
func (s *SQLite) SetPreference(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query := `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}

// DeletePreference removes key. Missing keys are not an error.
func (s *SQLite) DeletePreference(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting preference %q: %w", key, err)
	}
	return nil
}

// Get implements the widget's preference store. Read failures count as a
// missing value.
func (s *SQLite) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, ok, err := s.GetPreference(ctx, key)
	if err != nil {
		return "", false
	}
	return value, ok
}

// Set implements the widget's preference store.
func (s *SQLite) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.SetPreference(ctx, key, value)
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
