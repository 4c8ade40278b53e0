package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (r *PostgresRepo) InsertCheckin(ctx context.Context, c *GuestCheckin) (bool, error) {
	const sql = `
		INSERT INTO guest_checkins (order_id, checked_in_at, checked_in_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id) DO NOTHING
		RETURNING id
	`

	err := r.conn(ctx).QueryRow(ctx, sql, c.OrderID, c.CheckedInAt, c.CheckedInBy).Scan(&c.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert checkin: %w", err)
	}
	return true, nil
}

func (r *PostgresRepo) GetCheckin(ctx context.Context, orderID string) (*GuestCheckin, error) {
	const sql = `
		SELECT id, order_id, checked_in_at, checked_in_by
		FROM guest_checkins
		WHERE order_id = $1
	`

	var c GuestCheckin
	err := r.conn(ctx).QueryRow(ctx, sql, orderID).Scan(&c.ID, &c.OrderID, &c.CheckedInAt, &c.CheckedInBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkin: %w", err)
	}
	return &c, nil
}
