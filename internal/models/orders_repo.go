package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const orderColumns = `
	id, event_id, event_title, event_location, event_date, event_time,
	customer_name, customer_email, customer_phone,
	payment_method, status, language, total_amount::text, created_at, updated_at
`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		total string
	)
	if err := row.Scan(
		&o.ID, &o.EventID, &o.Event.Title, &o.Event.Location, &o.Event.Date, &o.Event.Time,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.PaymentMethod, &o.Status, &o.Language, &total, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse order total %q: %w", total, err)
	}
	o.TotalAmount = amount
	o.Items = []OrderItem{}
	return &o, nil
}

func (r *PostgresRepo) InsertOrder(ctx context.Context, o *Order) error {
	const sql = `
		INSERT INTO orders (
			id, event_id, event_title, event_location, event_date, event_time,
			customer_name, customer_email, customer_phone,
			payment_method, status, language, total_amount, created_at, updated_at
		)
		VALUES (
			$1, $2, $3::jsonb, $4::jsonb, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13::numeric, $14, $15
		)
	`

	_, err := r.conn(ctx).Exec(ctx, sql,
		o.ID, o.EventID, o.Event.Title, o.Event.Location, o.Event.Date, o.Event.Time,
		o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.PaymentMethod, o.Status, o.Language, o.TotalAmount.String(), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *PostgresRepo) InsertOrderItems(ctx context.Context, orderID string, items []OrderItem) error {
	const sql = `
		INSERT INTO order_items (order_id, ticket_type_id, name, quantity, price, subtotal)
		VALUES ($1, $2, $3::jsonb, $4, $5::numeric, $6::numeric)
		RETURNING id
	`

	db := r.conn(ctx)
	for i := range items {
		it := &items[i]
		it.OrderID = orderID
		err := db.QueryRow(ctx, sql,
			orderID, it.TicketTypeID, it.Name, it.Quantity, it.Price.String(), it.Subtotal.String(),
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.conn(ctx).QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.orderItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, items[id]...)
	return o, nil
}

func (r *PostgresRepo) ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.EventID != nil {
		args = append(args, *filter.EventID)
		where = append(where, fmt.Sprintf("event_id = $%d", len(args)))
	}

	sql := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = append(orders[i].Items, items[orders[i].ID]...)
	}
	return orders, nil
}

func (r *PostgresRepo) orderItems(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	const sql = `
		SELECT id, order_id, ticket_type_id, name, quantity, price::text, subtotal::text
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.conn(ctx).Query(ctx, sql, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			it              OrderItem
			price, subtotal string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.TicketTypeID, &it.Name, &it.Quantity, &price, &subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse item price %q: %w", price, err)
		}
		if it.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse item subtotal %q: %w", subtotal, err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus, at time.Time) error {
	const sql = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.conn(ctx).Exec(ctx, sql, id, status, at)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return nil
}
