package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventStatusActive  EventStatus = "active"
	EventStatusDeleted EventStatus = "deleted"
)

const (
	DefaultEventCategory = "other"
	DefaultEventImage    = "🎪"
	UnlimitedQuantity    = -1
)

type Event struct {
	ID          int64        `db:"id" json:"id"`
	Title       Localized    `db:"title" json:"title"`
	Description Localized    `db:"description" json:"description"`
	Location    Localized    `db:"location" json:"location"`
	Date        string       `db:"date" json:"date"` // YYYY-MM-DD
	Time        string       `db:"time" json:"time"` // HH:MM
	Category    string       `db:"category" json:"category"`
	Image       string       `db:"image" json:"image"`
	Status      EventStatus  `db:"status" json:"status"`
	TicketTypes []TicketType `json:"tickets"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}

// TicketType belongs to exactly one event. QuantityAvailable is -1 when
// unlimited.
type TicketType struct {
	ID                int64           `db:"id" json:"id"`
	EventID           int64           `db:"event_id" json:"eventId"`
	Name              Localized       `db:"name" json:"name"`
	Price             decimal.Decimal `db:"price" json:"price"`
	QuantityAvailable int             `db:"quantity_available" json:"quantityAvailable"`
}

// FindTicketType returns the ticket type with the given id, or nil.
func (e *Event) FindTicketType(id int64) *TicketType {
	for i := range e.TicketTypes {
		if e.TicketTypes[i].ID == id {
			return &e.TicketTypes[i]
		}
	}
	return nil
}

type EventInput struct {
	Title       Localized         `json:"title"`
	Description Localized         `json:"description"`
	Location    Localized         `json:"location"`
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string            `json:"time" validate:"required,datetime=15:04"`
	Category    string            `json:"category" validate:"omitempty,max=64"`
	Image       string            `json:"image" validate:"omitempty,max=32"`
	TicketTypes []TicketTypeInput `json:"tickets" validate:"dive"`
}

type TicketTypeInput struct {
	Name              Localized        `json:"name"`
	Price             *decimal.Decimal `json:"price" validate:"required"`
	QuantityAvailable *int             `json:"quantityAvailable" validate:"omitempty,min=-1"`
}
