// Package ledger provides an append-only history of wallpaper transitions.
package ledger

import (
	"database/sql"
	"time"
)

// EventType represents the type of event in the ledger
type EventType string

const (
	EventTransitionStarted   EventType = "transition_started"
	EventTransitionCompleted EventType = "transition_completed"
	EventTransitionFailed    EventType = "transition_failed"
	EventTransitionSkipped   EventType = "transition_skipped"
)

// Entry represents a single event in the ledger
type Entry struct {
	ID           int64
	EventType    EventType
	Timestamp    time.Time
	TransitionID string
	Source       string
	StartColor   string // Empty when no start color was known
	EndColor     string
	DurationMs   int64
	Steps        int
	Error        string
}

// Ledger records transition events in SQLite
type Ledger struct {
	db *sql.DB
}

// New creates a new Ledger using the provided database connection
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Append adds a new event to the ledger. Timestamp is set to now when zero.
func (l *Ledger) Append(e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := l.db.Exec(`
		INSERT INTO transition_ledger
			(event_type, timestamp, transition_id, source, start_color, end_color, duration_ms, steps, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(e.EventType), ts.UTC().Unix(), e.TransitionID, e.Source,
		e.StartColor, e.EndColor, e.DurationMs, e.Steps, e.Error)

	return err
}

// Recent returns the newest entries first
func (l *Ledger) Recent(limit int) ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT id, event_type, timestamp, transition_id, source, start_color, end_color, duration_ms, steps, error
		FROM transition_ledger
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return l.scanEntries(rows)
}

// GetByTransition returns all events of one transition in insertion order
func (l *Ledger) GetByTransition(transitionID string) ([]*Entry, error) {
	rows, err := l.db.Query(`
		SELECT id, event_type, timestamp, transition_id, source, start_color, end_color, duration_ms, steps, error
		FROM transition_ledger
		WHERE transition_id = ?
		ORDER BY id ASC
	`, transitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return l.scanEntries(rows)
}

// DeleteOlderThan removes entries older than the specified duration (retention policy)
func (l *Ledger) DeleteOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	result, err := l.db.Exec(`
		DELETE FROM transition_ledger WHERE timestamp < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (l *Ledger) scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var source, startColor, errStr sql.NullString
		var timestamp int64

		err := rows.Scan(
			&entry.ID, &entry.EventType, &timestamp, &entry.TransitionID, &source,
			&startColor, &entry.EndColor, &entry.DurationMs, &entry.Steps, &errStr,
		)
		if err != nil {
			return nil, err
		}

		entry.Timestamp = time.Unix(timestamp, 0).UTC()
		if source.Valid {
			entry.Source = source.String
		}
		if startColor.Valid {
			entry.StartColor = startColor.String
		}
		if errStr.Valid {
			entry.Error = errStr.String
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
