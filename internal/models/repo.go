package models

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

var Validate = validator.New()

// Transactor runs fn inside a single database transaction carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventRepository interface {
	ListActiveEvents(ctx context.Context) ([]Event, error)
	// GetEventByID returns the event in any status, or ErrNotFound.
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	CreateEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, e *Event) error
	SetEventStatus(ctx context.Context, id int64, status EventStatus, at time.Time) error
	// ReplaceTicketTypes deletes every ticket type of the event and inserts
	// types, filling in their ids.
	ReplaceTicketTypes(ctx context.Context, eventID int64, types []TicketType) error
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, o *Order) error
	InsertOrderItems(ctx context.Context, orderID string, items []OrderItem) error
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus, at time.Time) error
}

type CheckinRepository interface {
	// InsertCheckin reports false when the order already has a check-in.
	InsertCheckin(ctx context.Context, c *GuestCheckin) (bool, error)
	// GetCheckin returns nil when the order has not been checked in.
	GetCheckin(ctx context.Context, orderID string) (*GuestCheckin, error)
}

type SettingsRepository interface {
	AllSettings(ctx context.Context) (map[string]string, error)
	UpsertSettings(ctx context.Context, values map[string]string) error
	// InsertMissingSettings writes only the keys that have no stored value.
	InsertMissingSettings(ctx context.Context, values map[string]string) error
}

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*StaffUser, error)
	GetUserByID(ctx context.Context, id int64) (*StaffUser, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	// EnsureUser inserts u unless the username is taken and reports whether
	// a row was created.
	EnsureUser(ctx context.Context, u *StaffUser) (bool, error)
}

// PostgresRepo implements every repository interface on one pool.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

var (
	_ EventRepository    = (*PostgresRepo)(nil)
	_ OrderRepository    = (*PostgresRepo)(nil)
	_ CheckinRepository  = (*PostgresRepo)(nil)
	_ SettingsRepository = (*PostgresRepo)(nil)
	_ UserRepository     = (*PostgresRepo)(nil)
)
