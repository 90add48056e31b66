package model

import (
	"staybook/shared/daterange"
	"staybook/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldListingID  = "listing_id"
	FieldGuestID    = "guest_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuestCount = "guest_count"
	FieldTotal      = "total"
	FieldStatus     = "status"
	FieldCreatedBy  = "created_by"
)

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusCompleted:
		return true
	}

	return false
}

type Reservation struct {
	ID         string    `db:"id"`
	ListingID  string    `db:"listing_id"`
	GuestID    string    `db:"guest_id"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	GuestCount int       `db:"guest_count"`
	Total      float64   `db:"total"`
	Status     Status    `db:"status"`
	model.Metadata
}

func (r Reservation) Range() daterange.Range {
	return daterange.New(r.CheckIn, r.CheckOut)
}
