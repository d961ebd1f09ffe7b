package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quesurifn/ics-attendance-server/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	position    INTEGER NOT NULL,
	uid         TEXT NOT NULL DEFAULT '',
	summary     TEXT NOT NULL DEFAULT '',
	course_name TEXT NOT NULL DEFAULT '',
	event_type  TEXT NOT NULL DEFAULT '',
	start_date  INTEGER NOT NULL,
	end_date    INTEGER,
	location    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	lecturers   TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	attended    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS events_uid ON events(uid);

CREATE TABLE IF NOT EXISTS meta (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	refreshed_at INTEGER NOT NULL,
	last_report  TEXT NOT NULL DEFAULT ''
);
`

// Store persists the attendance table in SQLite. Timestamps are stored as
// unix seconds; a NULL end_date means the feed had no usable DTEND. The
// single meta row keeps the last refresh time and the report snapshot that
// was current when the table was written.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// LoadAttendance returns the stored uid -> attended mapping. Rows without a
// UID can never be matched on reconciliation and are skipped.
func (s *Store) LoadAttendance(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uid, attended FROM events WHERE uid != ''`)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	saved := make(map[string]bool)
	for rows.Next() {
		var uid string
		var attended bool
		if err := rows.Scan(&uid, &attended); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		saved[uid] = attended
	}
	return saved, rows.Err()
}

// SaveTable replaces the whole event table in one transaction and updates
// the meta row. Overwriting whole keeps re-invoked runs from corrupting
// previously stored attendance.
func (s *Store) SaveTable(ctx context.Context, events []types.Event, stats types.Statistics) error {
	report, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (
			position, uid, summary, course_name, event_type,
			start_date, end_date, location, description, lecturers, category, attended
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range events {
		var end sql.NullInt64
		if !ev.EndDate.IsZero() {
			end = sql.NullInt64{Int64: ev.EndDate.Unix(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			i, ev.UID, ev.Summary, ev.CourseName, ev.EventType,
			ev.StartDate.Unix(), end, ev.Location, ev.Description,
			ev.Lecturers, ev.Category, ev.Attended,
		); err != nil {
			return fmt.Errorf("insert event %q: %w", ev.UID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meta (id, refreshed_at, last_report) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET refreshed_at = excluded.refreshed_at, last_report = excluded.last_report`,
		time.Now().Unix(), string(report),
	); err != nil {
		return fmt.Errorf("update meta: %w", err)
	}

	return tx.Commit()
}

// Events returns the stored table in its saved order.
func (s *Store) Events(ctx context.Context) ([]types.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, summary, course_name, event_type, start_date, end_date,
		       location, description, lecturers, category, attended
		FROM events ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []types.Event
	for rows.Next() {
		var ev types.Event
		var start int64
		var end sql.NullInt64
		if err := rows.Scan(
			&ev.UID, &ev.Summary, &ev.CourseName, &ev.EventType, &start, &end,
			&ev.Location, &ev.Description, &ev.Lecturers, &ev.Category, &ev.Attended,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.StartDate = time.Unix(start, 0).UTC()
		if end.Valid {
			ev.EndDate = time.Unix(end.Int64, 0).UTC()
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// SetAttended flips the attendance flag of one stored event.
func (s *Store) SetAttended(ctx context.Context, uid string, attended bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE events SET attended = ? WHERE uid = ?`, attended, uid)
	if err != nil {
		return fmt.Errorf("update attended: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no stored event with uid %q", uid)
	}
	return nil
}

// RefreshedAt reports when the table was last written. The zero time means
// the table has never been refreshed.
func (s *Store) RefreshedAt(ctx context.Context) (time.Time, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx, `SELECT refreshed_at FROM meta WHERE id = 1`).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query meta: %w", err)
	}
	return time.Unix(ts, 0).UTC(), nil
}
