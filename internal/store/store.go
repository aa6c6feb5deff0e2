package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS days (
		key         TEXT PRIMARY KEY,
		date        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS fixed_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		day_key     TEXT NOT NULL REFERENCES days(key) ON DELETE CASCADE,
		kind        TEXT NOT NULL CHECK (kind IN ('class', 'meal')),
		name        TEXT NOT NULL,
		start_at    TEXT NOT NULL,
		end_at      TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		day_key     TEXT NOT NULL REFERENCES days(key) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		duration    INTEGER NOT NULL,
		unit        TEXT NOT NULL DEFAULT 'm',
		priority    TEXT NOT NULL DEFAULT 'Medium',
		completed   INTEGER NOT NULL DEFAULT 0,
		position    INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON fixed_events(day_key);
	CREATE INDEX IF NOT EXISTS idx_tasks_day  ON tasks(day_key);
	CREATE INDEX IF NOT EXISTS idx_days_date  ON days(date);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('day_start',      '08:00'),
		('day_end',        '23:00'),
		('meal_breakfast', '09:00'),
		('meal_lunch',     '13:00'),
		('meal_dinner',    '20:00'),
		('strict',         'false');
	`
	_, err := s.db.Exec(ddl)
	return err
}
