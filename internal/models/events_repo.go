package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const eventColumns = `id, title, description, location, date, time, category, image, status, created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.Date, &e.Time,
		&e.Category, &e.Image, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.TicketTypes = []TicketType{}
	return &e, nil
}

func (r *PostgresRepo) ListActiveEvents(ctx context.Context) ([]Event, error) {
	const sql = `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY date, time, id`

	rows, err := r.conn(ctx).Query(ctx, sql, EventStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return events, nil
	}

	ids := make([]int64, len(events))
	byID := make(map[int64]int, len(events))
	for i, e := range events {
		ids[i] = e.ID
		byID[e.ID] = i
	}
	types, err := r.ticketTypes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		i := byID[t.EventID]
		events[i].TicketTypes = append(events[i].TicketTypes, t)
	}
	return events, nil
}

func (r *PostgresRepo) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	const sql = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	e, err := scanEvent(r.conn(ctx).QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	types, err := r.ticketTypes(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	e.TicketTypes = append(e.TicketTypes, types...)
	return e, nil
}

func (r *PostgresRepo) ticketTypes(ctx context.Context, eventIDs []int64) ([]TicketType, error) {
	const sql = `
		SELECT id, event_id, name, price::text, quantity_available
		FROM ticket_types
		WHERE event_id = ANY($1)
		ORDER BY event_id, id
	`

	rows, err := r.conn(ctx).Query(ctx, sql, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	defer rows.Close()

	var types []TicketType
	for rows.Next() {
		var (
			t     TicketType
			price string
		)
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &price, &t.QuantityAvailable); err != nil {
			return nil, fmt.Errorf("scan ticket type: %w", err)
		}
		if t.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse ticket price %q: %w", price, err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	return types, nil
}

func (r *PostgresRepo) CreateEvent(ctx context.Context, e *Event) error {
	const sql = `
		INSERT INTO events (title, description, location, date, time, category, image, status, created_at, updated_at)
		VALUES ($1::jsonb, $2::jsonb, $3::jsonb, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.conn(ctx).QueryRow(ctx, sql,
		e.Title, e.Description, e.Location, e.Date, e.Time,
		e.Category, e.Image, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *PostgresRepo) UpdateEvent(ctx context.Context, e *Event) error {
	const sql = `
		UPDATE events
		SET title = $2::jsonb, description = $3::jsonb, location = $4::jsonb,
		    date = $5, time = $6, category = $7, image = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.conn(ctx).Exec(ctx, sql,
		e.ID, e.Title, e.Description, e.Location, e.Date, e.Time,
		e.Category, e.Image, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %d", ErrNotFound, e.ID)
	}
	return nil
}

func (r *PostgresRepo) SetEventStatus(ctx context.Context, id int64, status EventStatus, at time.Time) error {
	const sql = `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.conn(ctx).Exec(ctx, sql, id, status, at)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %d", ErrNotFound, id)
	}
	return nil
}

func (r *PostgresRepo) ReplaceTicketTypes(ctx context.Context, eventID int64, types []TicketType) error {
	const (
		deleteSQL = `DELETE FROM ticket_types WHERE event_id = $1`
		insertSQL = `
			INSERT INTO ticket_types (event_id, name, price, quantity_available)
			VALUES ($1, $2::jsonb, $3::numeric, $4)
			RETURNING id
		`
	)

	db := r.conn(ctx)
	if _, err := db.Exec(ctx, deleteSQL, eventID); err != nil {
		return fmt.Errorf("delete ticket types: %w", err)
	}
	for i := range types {
		t := &types[i]
		t.EventID = eventID
		if err := db.QueryRow(ctx, insertSQL, eventID, t.Name, t.Price.String(), t.QuantityAvailable).Scan(&t.ID); err != nil {
			return fmt.Errorf("insert ticket type: %w", err)
		}
	}
	return nil
}
