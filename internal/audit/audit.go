// Package audit keeps a local append-only trail of booking lifecycle
// events in sqlite, fed from the in-process event bus.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"

	"agendamed/internal/events"
)

// Entry is one recorded audit event.
type Entry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	BookingID string    `json:"booking_id"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Trail writes audit entries to sqlite.
type Trail struct {
	db  *sql.DB
	log *zerolog.Logger
}

// Open opens (or creates) the audit database at path.
func Open(path string, logger *zerolog.Logger) (*Trail, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping audit db: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		booking_id TEXT NOT NULL,
		details TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create audit table: %w", err)
	}

	logger.Info().Str("path", path).Msg("audit trail opened")
	return &Trail{db: db, log: logger}, nil
}

// Close closes the underlying database.
func (t *Trail) Close() error {
	return t.db.Close()
}

// Ping verifies the database connection.
func (t *Trail) Ping(ctx context.Context) error {
	return t.db.PingContext(ctx)
}

// Record appends one entry.
func (t *Trail) Record(ctx context.Context, action, bookingID, details string) error {
	_, err := t.db.ExecContext(ctx,
		"INSERT INTO audit_log (action, booking_id, details) VALUES (?, ?, ?)",
		action, bookingID, details,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (t *Trail) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, action, booking_id, COALESCE(details, ''), created_at
		FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.BookingID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Subscribe wires the trail to booking events on the bus. Recording
// failures are logged, never propagated to the publisher.
func (t *Trail) Subscribe(bus *events.Bus) {
	handler := func(e events.Event) error {
		if err := t.Record(context.Background(), e.Type, e.BookingID, string(e.Payload)); err != nil {
			t.log.Error().Err(err).Str("action", e.Type).Msg("audit record failed")
		}
		return nil
	}
	bus.Subscribe(events.BookingCreated, handler)
	bus.Subscribe(events.BookingUpdated, handler)
	bus.Subscribe(events.BookingCancelled, handler)
}
