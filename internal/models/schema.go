package models

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'admin' CHECK (role IN ('admin', 'staff')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          BIGSERIAL PRIMARY KEY,
		title       JSONB NOT NULL,
		description JSONB NOT NULL DEFAULT '{}'::jsonb,
		location    JSONB NOT NULL,
		date        TEXT NOT NULL,
		time        TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT 'other',
		image       TEXT NOT NULL DEFAULT '🎪',
		status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'deleted')),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS events_status_date_idx ON events (status, date, time)`,
	`CREATE TABLE IF NOT EXISTS ticket_types (
		id                 BIGSERIAL PRIMARY KEY,
		event_id           BIGINT NOT NULL REFERENCES events (id),
		name               JSONB NOT NULL,
		price              NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
		quantity_available INTEGER NOT NULL DEFAULT -1
	)`,
	`CREATE INDEX IF NOT EXISTS ticket_types_event_idx ON ticket_types (event_id)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id             TEXT PRIMARY KEY,
		event_id       BIGINT NOT NULL REFERENCES events (id),
		event_title    JSONB NOT NULL,
		event_location JSONB NOT NULL,
		event_date     TEXT NOT NULL,
		event_time     TEXT NOT NULL,
		customer_name  TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		payment_method TEXT NOT NULL CHECK (payment_method IN ('transfer', 'cash')),
		status         TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'PAID', 'EXPIRED', 'CANCELLED')),
		language       TEXT NOT NULL,
		total_amount   NUMERIC(12, 2) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_created_idx ON orders (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id             BIGSERIAL PRIMARY KEY,
		order_id       TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		ticket_type_id BIGINT NOT NULL,
		name           JSONB NOT NULL,
		quantity       INTEGER NOT NULL CHECK (quantity >= 1),
		price          NUMERIC(12, 2) NOT NULL,
		subtotal       NUMERIC(12, 2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS guest_checkins (
		id            BIGSERIAL PRIMARY KEY,
		order_id      TEXT NOT NULL UNIQUE REFERENCES orders (id),
		checked_in_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		checked_in_by TEXT NOT NULL
	)`,
}

// Migrate creates the tables and indexes when they do not exist yet.
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
