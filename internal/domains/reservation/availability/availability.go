package availability

import (
	"staybook/internal/domains/reservation/ledger"
	"staybook/shared/daterange"
)

// Checker gives a yes/no availability answer for a single listing.
type Checker struct {
	ledger ledger.Ledger
}

func NewChecker(l ledger.Ledger) Checker {
	return Checker{ledger: l}
}

// IsAvailable reports whether candidate is free on the listing. Zero-length
// candidates are not special-cased.
func (c Checker) IsAvailable(listingID string, candidate daterange.Range) bool {
	return !c.ledger.HasConflict(listingID, candidate)
}
