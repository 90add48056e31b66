package model

import (
	"staybook/shared/model"
	"time"
)

const (
	TableName  = "comments"
	EntityName = "comment"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldListingID     = "listing_id"
	FieldGuestID       = "guest_id"
	FieldRating        = "rating"
	FieldContent       = "content"
	FieldReply         = "reply"
	FieldRepliedAt     = "replied_at"
	FieldCreatedAt     = "created_at"

	MinRating = 1
	MaxRating = 5
)

type Comment struct {
	ID            string     `db:"id"`
	ReservationID string     `db:"reservation_id"`
	ListingID     string     `db:"listing_id"`
	GuestID       string     `db:"guest_id"`
	Rating        int        `db:"rating"`
	Content       string     `db:"content"`
	Reply         *string    `db:"reply"`
	RepliedAt     *time.Time `db:"replied_at"`
	model.Metadata
}
