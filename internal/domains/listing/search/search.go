// Package search narrows a set of listings down to the ones matching what a
// guest asked for.
package search

import (
	"staybook/internal/domains/listing/model"
	"staybook/internal/domains/reservation/availability"
	"staybook/internal/domains/reservation/ledger"
	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared/daterange"
	"strings"
	"time"
)

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1_000_000
)

type Criteria struct {
	City      *string
	PriceMin  float64
	PriceMax  float64
	CheckIn   *time.Time
	CheckOut  *time.Time
	Amenities []string

	// Favorites restricts results to these listing IDs. Nil disables the
	// dimension, an empty non-nil set matches nothing.
	Favorites map[string]struct{}

	// BasePriceMin and BasePriceMax are the bounds applied when the guest
	// names none. A price range equal to them does not activate the price
	// dimension. Both zero means DefaultPriceMin and DefaultPriceMax.
	BasePriceMin float64
	BasePriceMax float64
}

func DefaultCriteria() Criteria {
	return NewCriteria(DefaultPriceMin, DefaultPriceMax)
}

// NewCriteria starts a search whose untouched price range is priceMin..priceMax.
func NewCriteria(priceMin, priceMax float64) Criteria {
	return Criteria{
		PriceMin:     priceMin,
		PriceMax:     priceMax,
		BasePriceMin: priceMin,
		BasePriceMax: priceMax,
	}
}

func (c Criteria) hasCity() bool {
	return c.City != nil && strings.TrimSpace(*c.City) != ""
}

func (c Criteria) hasDates() bool {
	return c.CheckIn != nil && c.CheckOut != nil
}

func (c Criteria) basePrice() (float64, float64) {
	if c.BasePriceMin == 0 && c.BasePriceMax == 0 {
		return DefaultPriceMin, DefaultPriceMax
	}

	return c.BasePriceMin, c.BasePriceMax
}

func (c Criteria) hasPrice() bool {
	priceMin, priceMax := c.basePrice()

	return c.PriceMin != priceMin || c.PriceMax != priceMax
}

// Active reports whether any dimension narrows the result.
func (c Criteria) Active() bool {
	return c.hasCity() || c.hasDates() || c.hasPrice() || len(c.Amenities) > 0 || c.Favorites != nil
}

func (c Criteria) Stay() (daterange.Range, bool) {
	if !c.hasDates() {
		return daterange.Range{}, false
	}

	return daterange.New(*c.CheckIn, *c.CheckOut), true
}

// Apply keeps the listings matching every active dimension, in input order.
// With no active dimension the input is returned as is.
func Apply(listings []model.Listing, criteria Criteria) []model.Listing {
	if !criteria.Active() {
		return listings
	}

	var checker *availability.Checker

	stay, withDates := criteria.Stay()
	if withDates {
		var records []reservationModel.Reservation
		for _, l := range listings {
			records = append(records, l.Reservations...)
		}

		c := availability.NewChecker(ledger.New(records...))
		checker = &c
	}

	city := ""
	if criteria.hasCity() {
		city = strings.ToLower(strings.TrimSpace(*criteria.City))
	}

	out := make([]model.Listing, 0, len(listings))

	for _, l := range listings {
		if city != "" && !strings.Contains(strings.ToLower(l.City), city) {
			continue
		}

		if l.PricePerNight < criteria.PriceMin || l.PricePerNight > criteria.PriceMax {
			continue
		}

		if !hasAmenities(l.Amenities, criteria.Amenities) {
			continue
		}

		if checker != nil && !checker.IsAvailable(l.ID, stay) {
			continue
		}

		if criteria.Favorites != nil {
			if _, ok := criteria.Favorites[l.ID]; !ok {
				continue
			}
		}

		out = append(out, l)
	}

	return out
}

// hasAmenities requires every wanted amenity to appear, case-insensitively,
// inside at least one of the listing's amenities.
func hasAmenities(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}

		found := false

		for _, h := range have {
			if strings.Contains(strings.ToLower(h), w) {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
