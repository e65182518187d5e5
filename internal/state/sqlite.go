package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// DefaultSlot is the color_state row used when no slot is configured.
const DefaultSlot = "desktop"

// SQLiteStore keeps the color in the color_state table, keyed by slot.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// NewSQLiteStore creates a store for the given slot.
func NewSQLiteStore(db *sql.DB, slot string) *SQLiteStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &SQLiteStore{db: db, slot: slot}
}

// Read returns the color for the slot, or ErrNotFound.
func (s *SQLiteStore) Read() (color.Color, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT color FROM color_state WHERE slot = ?
	`, s.slot).Scan(&value)

	if err == sql.ErrNoRows {
		return color.Color{}, ErrNotFound
	}
	if err != nil {
		return color.Color{}, fmt.Errorf("failed to read color state: %w", err)
	}

	c, err := color.Parse(value)
	if err != nil {
		return color.Color{}, fmt.Errorf("failed to parse stored color: %w", err)
	}
	return c, nil
}

// Write upserts the color, incrementing the row version.
func (s *SQLiteStore) Write(c color.Color) error {
	now := time.Now().UTC().Unix()

	_, err := s.db.Exec(`
		INSERT INTO color_state (slot, color, version, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(slot) DO UPDATE SET
			color = excluded.color,
			version = version + 1,
			updated_at = excluded.updated_at
	`, s.slot, c.String(), now)
	if err != nil {
		return fmt.Errorf("failed to write color state: %w", err)
	}

	log.Debug().
		Str("slot", s.slot).
		Str("color", c.String()).
		Msg("Color state written")

	return nil
}

// Clear removes the stored color for the slot.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM color_state WHERE slot = ?`, s.slot)
	return err
}
