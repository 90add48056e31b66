package model

import (
	"path"
	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared/model"

	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID            = "id"
	FieldHostID        = "host_id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldAmenities     = "amenities"
	FieldPhotos        = "photos"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldCountry       = "country"
	FieldLatitude      = "latitude"
	FieldLongitude     = "longitude"
	FieldPricePerNight = "price_per_night"
	FieldMaxGuests     = "max_guests"
	FieldStatus        = "status"
	FieldCreatedAt     = "created_at"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusPending  Status = "PENDING"
)

type Listing struct {
	ID            string         `db:"id"`
	HostID        string         `db:"host_id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Amenities     pq.StringArray `db:"amenities"`
	Photos        pq.StringArray `db:"photos"`
	Address       string         `db:"address"`
	City          string         `db:"city"`
	Country       string         `db:"country"`
	Latitude      float64        `db:"latitude"`
	Longitude     float64        `db:"longitude"`
	PricePerNight float64        `db:"price_per_night"`
	MaxGuests     int            `db:"max_guests"`
	Status        Status         `db:"status"`
	model.Metadata

	// Reservations is filled in memory before a search and never persisted.
	Reservations []reservationModel.Reservation
}

// PhotoKey places a photo under its listing with a fresh name so uploads
// with the same file name never overwrite each other.
func PhotoKey(listingID, fileName string) string {
	return path.Join(TableName, listingID, uuid.NewString()+strings.ToLower(path.Ext(fileName)))
}
