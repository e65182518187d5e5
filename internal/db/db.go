// Package db provides the SQLite connection and schema for wallslapper.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite database connection
type DB struct {
	*sql.DB
}

// Open opens the database and initializes the schema
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db}, nil
}

// initSchema creates all required tables
func initSchema(db *sql.DB) error {
	// Transition ledger - append-only history, several rows per transition
	// (started, then completed/failed/skipped) sharing a transition_id
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transition_ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			transition_id TEXT NOT NULL,
			source TEXT,
			start_color TEXT,
			end_color TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			error TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_ledger_ts ON transition_ledger(timestamp);
		CREATE INDEX IF NOT EXISTS idx_ledger_transition ON transition_ledger(transition_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create transition_ledger table: %w", err)
	}

	// Color state - the color currently on screen, one row per slot
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS color_state (
			slot TEXT PRIMARY KEY,
			color TEXT NOT NULL,
			version INTEGER DEFAULT 1,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create color_state table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
