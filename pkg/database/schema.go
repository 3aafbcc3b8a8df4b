package database

import (
	"context"
	"fmt"
)

// statements are idempotent and run in order on startup
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		is_staff BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS show_themes (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(63) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS planetarium_domes (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(63) NOT NULL,
		rows INT NOT NULL CHECK (rows > 0),
		seats_in_row INT NOT NULL CHECK (seats_in_row > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS astronomy_shows (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS astronomy_show_themes (
		astronomy_show_id BIGINT NOT NULL REFERENCES astronomy_shows(id) ON DELETE CASCADE,
		show_theme_id BIGINT NOT NULL REFERENCES show_themes(id) ON DELETE CASCADE,
		PRIMARY KEY (astronomy_show_id, show_theme_id)
	)`,
	`CREATE TABLE IF NOT EXISTS show_sessions (
		id BIGSERIAL PRIMARY KEY,
		show_time TIMESTAMPTZ NOT NULL,
		astronomy_show_id BIGINT NOT NULL REFERENCES astronomy_shows(id) ON DELETE RESTRICT,
		planetarium_dome_id BIGINT NOT NULL REFERENCES planetarium_domes(id) ON DELETE RESTRICT
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		"row" INT NOT NULL CHECK ("row" > 0),
		seat INT NOT NULL CHECK (seat > 0),
		show_session_id BIGINT NOT NULL REFERENCES show_sessions(id) ON DELETE RESTRICT,
		reservation_id BIGINT NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
		CONSTRAINT tickets_session_row_seat_key UNIQUE (show_session_id, "row", seat)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_show_sessions_show_time ON show_sessions (show_time)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_reservation ON tickets (reservation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user ON reservations (user_id, created_at DESC)`,
}

// EnsureSchema creates missing tables and indexes.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
