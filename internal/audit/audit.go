// Package audit keeps a durable trail of booking actions in sqlite.
// The trail is append-only; the engine's JSON catalog stays the source
// of truth for current state.
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

	"floorten/internal/events"
)

// Entry is one recorded booking action.
type Entry struct {
	ID         int64
	Action     string
	RoomID     string
	RoomName   string
	BookingID  string
	EventName  string
	OwnerID    string
	StartTime  time.Time
	EndTime    time.Time
	RecordedAt time.Time
}

// Trail writes booking events to sqlite.
type Trail struct {
	db     *sql.DB
	logger *zerolog.Logger
}

// New opens or creates the audit database at path.
func New(path string, logger *zerolog.Logger) (*Trail, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect audit database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS booking_audit (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		room_id TEXT NOT NULL,
		room_name TEXT NOT NULL,
		booking_id TEXT NOT NULL,
		event_name TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create audit table: %w", err)
	}

	logger.Info().Str("path", path).Msg("audit trail initialized")
	return &Trail{db: db, logger: logger}, nil
}

// Attach subscribes the trail to booking lifecycle events. Recording
// failures are logged, never propagated; an audit hiccup must not fail
// a booking.
func (t *Trail) Attach(bus *events.Bus) {
	record := func(ev events.BookingEvent) {
		if err := t.Record(context.Background(), ev); err != nil {
			t.logger.Error().Err(err).Str("type", string(ev.Type)).Msg("audit record failed")
		}
	}
	bus.Subscribe(events.TypeBooked, record)
	bus.Subscribe(events.TypeCancelled, record)
}

// Record writes one event to the trail.
func (t *Trail) Record(ctx context.Context, ev events.BookingEvent) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO booking_audit
			(action, room_id, room_name, booking_id, event_name, owner_id, start_time, end_time, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(ev.Type), ev.RoomID, ev.RoomName, ev.Booking.ID, ev.Booking.EventName,
		ev.Booking.OwnerID, ev.Booking.StartTime, ev.Booking.EndTime, ev.OccurredAt,
	)
	return err
}

// Recent returns the newest entries, most recent first.
func (t *Trail) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := t.db.QueryContext(ctx,
		`SELECT id, action, room_id, room_name, booking_id, event_name, owner_id, start_time, end_time, recorded_at
		 FROM booking_audit ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.RoomID, &e.RoomName, &e.BookingID,
			&e.EventName, &e.OwnerID, &e.StartTime, &e.EndTime, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (t *Trail) Close() error {
	return t.db.Close()
}
