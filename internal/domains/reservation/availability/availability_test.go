package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"staybook/internal/domains/reservation/availability"
	"staybook/internal/domains/reservation/ledger"
	"staybook/internal/domains/reservation/model"
	"staybook/shared/daterange"
)

func day(value string) time.Time {
	d, _ := time.Parse(daterange.LayoutDate, value)

	return d
}

func candidate(start, end string) daterange.Range {
	return daterange.New(day(start), day(end))
}

func TestIsAvailableEmptyLedger(t *testing.T) {
	checker := availability.NewChecker(ledger.New())

	assert.True(t, checker.IsAvailable("L1", candidate("2024-03-12", "2024-03-20")))
	assert.True(t, checker.IsAvailable("L1", candidate("2024-03-12", "2024-03-12")))
	assert.True(t, checker.IsAvailable("", candidate("2024-03-20", "2024-03-12")))
}

func TestIsAvailable(t *testing.T) {
	checker := availability.NewChecker(ledger.New(
		model.Reservation{
			ID:        "r1",
			ListingID: "L1",
			CheckIn:   day("2024-03-10"),
			CheckOut:  day("2024-03-15"),
			Status:    model.StatusConfirmed,
		},
		model.Reservation{
			ID:        "r2",
			ListingID: "L2",
			CheckIn:   day("2024-03-01"),
			CheckOut:  day("2024-03-31"),
			Status:    model.StatusCancelled,
		},
	))

	tests := []struct {
		name      string
		listingID string
		candidate daterange.Range
		want      bool
	}{
		{name: "partial overlap", listingID: "L1", candidate: candidate("2024-03-12", "2024-03-20"), want: false},
		{name: "check-in on the checkout day", listingID: "L1", candidate: candidate("2024-03-15", "2024-03-20"), want: false},
		{name: "day after checkout", listingID: "L1", candidate: candidate("2024-03-16", "2024-03-20"), want: true},
		{name: "checkout on the check-in day", listingID: "L1", candidate: candidate("2024-03-05", "2024-03-10"), want: false},
		{name: "other listing is unaffected", listingID: "L3", candidate: candidate("2024-03-12", "2024-03-20"), want: true},
		{name: "cancelled reservation still blocks", listingID: "L2", candidate: candidate("2024-03-12", "2024-03-13"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.IsAvailable(tt.listingID, tt.candidate))
		})
	}
}
