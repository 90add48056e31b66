// Package ledger answers overlap queries over the reservations of a listing.
//
// A Ledger is a read-only view built from records supplied by the caller on
// every search. It keeps no state between searches. Every record blocks
// availability regardless of its status, cancelled ones included.
package ledger

import (
	"staybook/internal/domains/reservation/model"
	"staybook/shared/daterange"
)

type Ledger struct {
	byListing map[string][]model.Reservation
}

// New groups records by listing, keeping the order they were supplied in.
func New(records ...model.Reservation) Ledger {
	byListing := make(map[string][]model.Reservation)

	for _, record := range records {
		byListing[record.ListingID] = append(byListing[record.ListingID], record)
	}

	return Ledger{byListing: byListing}
}

// ForListing returns the records of a listing in insertion order. The returned
// slice is a copy.
func (l Ledger) ForListing(listingID string) []model.Reservation {
	records := l.byListing[listingID]
	if len(records) == 0 {
		return []model.Reservation{}
	}

	out := make([]model.Reservation, len(records))
	copy(out, records)

	return out
}

// HasConflict reports whether any record of the listing overlaps candidate.
// A listing with no records never conflicts.
func (l Ledger) HasConflict(listingID string, candidate daterange.Range) bool {
	return l.HasConflictExcept(listingID, candidate, "")
}

// HasConflictExcept is HasConflict ignoring the record with reservationID,
// used when an existing reservation is being rescheduled.
func (l Ledger) HasConflictExcept(listingID string, candidate daterange.Range, reservationID string) bool {
	for _, record := range l.byListing[listingID] {
		if reservationID != "" && record.ID == reservationID {
			continue
		}

		if daterange.Overlaps(record.Range(), candidate) {
			return true
		}
	}

	return false
}

func (l Ledger) Len() int {
	total := 0
	for _, records := range l.byListing {
		total += len(records)
	}

	return total
}
