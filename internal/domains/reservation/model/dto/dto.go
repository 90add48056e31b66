package dto

import (
	"staybook/internal/domains/reservation/draft"
	"staybook/internal/domains/reservation/model"
	"staybook/shared"
	"staybook/shared/daterange"
	gDto "staybook/shared/dto"
	gModel "staybook/shared/model"
	"staybook/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ListingID  string `json:"listing_id"  validate:"required"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	GuestCount int    `json:"guest_count"`
}

func (c *CreateReservationRequest) ToDraft() (draft.Draft, error) {
	return draft.Parse(c.CheckIn, c.CheckOut, c.GuestCount, timezone.GetLocation()) //nolint:wrapcheck
}

func (c *CreateReservationRequest) ToModel(guestID string, d draft.Draft, total float64) model.Reservation {
	return model.Reservation{
		ID:         uuid.NewString(),
		ListingID:  c.ListingID,
		GuestID:    guestID,
		CheckIn:    d.CheckIn,
		CheckOut:   d.CheckOut,
		GuestCount: d.GuestCount,
		Total:      total,
		Status:     model.StatusPending,
		Metadata:   gModel.NewMetadata(guestID),
	}
}

type UpdateReservationRequest struct {
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	GuestCount int    `json:"guest_count"`
}

func (u *UpdateReservationRequest) ToDraft() (draft.Draft, error) {
	return draft.Parse(u.CheckIn, u.CheckOut, u.GuestCount, timezone.GetLocation()) //nolint:wrapcheck
}

type UpdateStayRequest struct {
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	GuestCount int       `db:"guest_count"`
	Total      float64   `db:"total"`
}

type UpdateStatusRequest struct {
	Status model.Status `db:"status"`
}

type ReservationFilter struct {
	Status      string
	CheckInFrom string
	CheckInTo   string
}

type ReservationResponse struct {
	ID         string  `json:"id"`
	ListingID  string  `json:"listing_id"`
	GuestID    string  `json:"guest_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Nights     int     `json:"nights"`
	GuestCount int     `json:"guest_count"`
	Total      float64 `json:"total"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.ListingID = model.ListingID
	r.GuestID = model.GuestID
	r.CheckIn = model.CheckIn.Format(daterange.LayoutDate)
	r.CheckOut = model.CheckOut.Format(daterange.LayoutDate)
	r.Nights = model.Range().Nights()
	r.GuestCount = model.GuestCount
	r.Total = model.Total
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
