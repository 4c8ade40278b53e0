package models

import "time"

type GuestCheckin struct {
	ID          int64     `db:"id" json:"id"`
	OrderID     string    `db:"order_id" json:"orderId"`
	CheckedInAt time.Time `db:"checked_in_at" json:"checkedInAt"`
	CheckedInBy string    `db:"checked_in_by" json:"checkedInBy"`
}

type CheckinStatus struct {
	OrderID     string     `json:"orderId"`
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
	CheckedInBy string     `json:"checkedInBy,omitempty"`
}
