package dto

import (
	"math"
	"staybook/internal/domains/metric/model"
	"staybook/shared/daterange"
	"staybook/shared/failure"
	"staybook/shared/timezone"
	"time"
)

type MetricRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Window parses both dates. They are required and from must not be after to.
func (m MetricRequest) Window() (from, to time.Time, err error) {
	if m.From == "" || m.To == "" {
		return from, to, failure.BadRequestFromString("from and to are required") // nolint:wrapcheck
	}

	if from, err = daterange.ParseDate(m.From, timezone.GetLocation()); err != nil {
		return from, to, failure.BadRequestFromString("from: " + err.Error()) // nolint:wrapcheck
	}

	if to, err = daterange.ParseDate(m.To, timezone.GetLocation()); err != nil {
		return from, to, failure.BadRequestFromString("to: " + err.Error()) // nolint:wrapcheck
	}

	if from.After(to) {
		return from, to, failure.BadRequestFromString("from must not be after to") // nolint:wrapcheck
	}

	return from, to, nil
}

type MetricResponse struct {
	ListingID         string  `json:"listing_id"`
	Title             string  `json:"title,omitempty"`
	From              string  `json:"from"`
	To                string  `json:"to"`
	TotalReservations int     `json:"total_reservations"`
	TotalIncome       float64 `json:"total_income"`
	AverageRating     float64 `json:"average_rating"`
	OccupancyRate     float64 `json:"occupancy_rate"`
}

func (r *MetricResponse) FromModel(summary model.Summary, from, to time.Time) {
	r.ListingID = summary.ListingID
	r.From = from.Format(daterange.LayoutDate)
	r.To = to.Format(daterange.LayoutDate)
	r.TotalReservations = summary.TotalReservations
	r.TotalIncome = summary.TotalIncome
	r.AverageRating = summary.AverageRating
	r.OccupancyRate = math.Round(summary.OccupancyRate()*10000) / 10000
}

type HostMetricResponse struct {
	From              string           `json:"from"`
	To                string           `json:"to"`
	TotalReservations int              `json:"total_reservations"`
	TotalIncome       float64          `json:"total_income"`
	Listings          []MetricResponse `json:"listings"`
}

func (r *HostMetricResponse) FromListings(listings []MetricResponse, from, to time.Time) {
	r.From = from.Format(daterange.LayoutDate)
	r.To = to.Format(daterange.LayoutDate)
	r.Listings = listings

	for _, l := range listings {
		r.TotalReservations += l.TotalReservations
		r.TotalIncome += l.TotalIncome
	}
}
