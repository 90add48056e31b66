// Package model holds the occupancy and income figures of a listing over a
// reporting window.
package model

import (
	"time"

	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared/daterange"
)

type Summary struct {
	ListingID         string
	TotalReservations int
	TotalIncome       float64
	AverageRating     float64
	BookedNights      int
	WindowNights      int
}

// OccupancyRate is booked nights over window nights, within [0, 1].
func (s Summary) OccupancyRate() float64 {
	if s.WindowNights <= 0 {
		return 0
	}

	rate := float64(s.BookedNights) / float64(s.WindowNights)
	if rate > 1 {
		return 1
	}

	return rate
}

// Window spans the whole days from..to, both dates included.
func Window(from, to time.Time) daterange.Range {
	return daterange.New(from, daterange.Date(to).AddDate(0, 0, 1))
}

// Summarize folds the reservations of one listing into a Summary. Counts and
// income cover reservations checking in inside the window; cancelled ones are
// left out. Booked nights are the nights of each stay that fall inside it.
func Summarize(listingID string, window daterange.Range, reservations []reservationModel.Reservation) Summary {
	summary := Summary{
		ListingID:    listingID,
		WindowNights: window.Nights(),
	}

	for _, r := range reservations {
		if r.ListingID != listingID || r.Status == reservationModel.StatusCancelled {
			continue
		}

		if checkIn := r.Range().Start; !checkIn.Before(window.Start) && checkIn.Before(window.End) {
			summary.TotalReservations++
			summary.TotalIncome += r.Total
		}

		if booked, ok := r.Range().Intersect(window); ok {
			summary.BookedNights += booked.Nights()
		}
	}

	return summary
}
