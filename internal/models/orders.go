package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusExpired   OrderStatus = "EXPIRED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusPending:   true,
	OrderStatusPaid:      true,
	OrderStatusExpired:   true,
	OrderStatusCancelled: true,
}

// ParseOrderStatus accepts exactly one of the four status values.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !orderStatuses[st] {
		return "", fmt.Errorf("%w: invalid order status %q", ErrValidation, s)
	}
	return st, nil
}

type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCash     PaymentMethod = "cash"
)

type Customer struct {
	Name  string `db:"customer_name" json:"name" validate:"required"`
	Email string `db:"customer_email" json:"email" validate:"required,email"`
	Phone string `db:"customer_phone" json:"phone" validate:"required"`
}

// EventSnapshot is the event data copied onto the order when it is placed.
type EventSnapshot struct {
	Title    Localized `db:"event_title" json:"title"`
	Location Localized `db:"event_location" json:"location"`
	Date     string    `db:"event_date" json:"date"`
	Time     string    `db:"event_time" json:"time"`
}

type Order struct {
	ID            string          `db:"id" json:"id"`
	EventID       int64           `db:"event_id" json:"eventId"`
	Event         EventSnapshot   `json:"event"`
	Customer      Customer        `json:"customer"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	Status        OrderStatus     `db:"status" json:"status"`
	Language      string          `db:"language" json:"language"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Items         []OrderItem     `json:"items"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// ItemsTotal sums the item subtotals.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

type OrderItem struct {
	ID           int64           `db:"id" json:"id"`
	OrderID      string          `db:"order_id" json:"orderId"`
	TicketTypeID int64           `db:"ticket_type_id" json:"typeId"`
	Name         Localized       `db:"name" json:"name"`
	Quantity     int             `db:"quantity" json:"quantity"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Subtotal     decimal.Decimal `db:"subtotal" json:"subtotal"`
}

type OrderItemInput struct {
	TicketTypeID int64            `json:"typeId" validate:"required,gt=0"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Quantity     int              `json:"quantity" validate:"required,min=1,max=10000"`
}

type CreateOrderInput struct {
	EventID       int64            `json:"eventId" validate:"required,gt=0"`
	Customer      Customer         `json:"customer"`
	Items         []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod    `json:"paymentMethod" validate:"required,oneof=transfer cash"`
	Language      string           `json:"language" validate:"omitempty,max=8"`
}

type OrderFilter struct {
	Status  *OrderStatus
	EventID *int64
}
