package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migration is a single versioned schema step. Versions are applied in order
// exactly once and recorded in schema_migrations.
type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS bookings (
				id TEXT PRIMARY KEY,
				room_id TEXT NOT NULL,
				requester_id TEXT NOT NULL,
				purpose TEXT NOT NULL DEFAULT '',
				date TEXT NOT NULL,
				start_minute INTEGER NOT NULL,
				end_minute INTEGER NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
				created_at TEXT NOT NULL,
				updated_at TEXT,
				CHECK (start_minute >= 0 AND end_minute <= 1440 AND start_minute < end_minute)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_room_date ON bookings (room_id, date)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_requester ON bookings (requester_id)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS schedules (
				id TEXT PRIMARY KEY,
				room_id TEXT NOT NULL,
				owner_id TEXT NOT NULL,
				course_code TEXT NOT NULL DEFAULT '',
				course_name TEXT NOT NULL DEFAULT '',
				weekday INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
				start_minute INTEGER NOT NULL,
				end_minute INTEGER NOT NULL,
				term TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				CHECK (start_minute >= 0 AND end_minute <= 1440 AND start_minute < end_minute)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_schedules_room_weekday ON schedules (room_id, weekday)`,
		},
	},
}

// Migrate brings the schema up to the current version. Already applied
// versions are skipped, so the call is safe on every startup.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return mapError(fmt.Errorf("sqlite: create schema_migrations: %w", err))
	}

	for _, m := range migrations {
		applied, err := d.migrationApplied(ctx, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		err = d.withTransaction(ctx, func(tx *sql.Tx) error {
			for _, statement := range m.statements {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return mapError(fmt.Errorf("sqlite: migration %d: %w", m.version, err))
				}
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				m.version, time.Now().UTC().Format(time.RFC3339))
			if err != nil {
				return mapError(fmt.Errorf("sqlite: record migration %d: %w", m.version, err))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DB) migrationApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&count)
	if err != nil {
		return false, mapError(fmt.Errorf("sqlite: check migration %d: %w", version, err))
	}
	return count > 0, nil
}
