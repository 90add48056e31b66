// Package draft validates a reservation request before it reaches storage.
package draft

import (
	"errors"
	"fmt"
	"staybook/shared/daterange"
	"time"
)

type Kind string

const (
	KindMissingDates      Kind = "MissingDates"
	KindStayTooShort      Kind = "StayTooShort"
	KindInvalidGuestCount Kind = "InvalidGuestCount"
)

var (
	ErrMissingDates      = &ValidationError{Kind: KindMissingDates, Message: "check-in and check-out dates are required"}
	ErrStayTooShort      = &ValidationError{Kind: KindStayTooShort, Message: "check-out must be at least one day after check-in"}
	ErrInvalidGuestCount = &ValidationError{Kind: KindInvalidGuestCount, Message: "at least one guest is required"}
)

type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches on Kind so wrapped copies compare equal to the sentinels.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if !errors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind
}

type Draft struct {
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
}

func (d Draft) Range() daterange.Range {
	return daterange.New(d.CheckIn, d.CheckOut)
}

func (d Draft) Nights() int {
	return d.Range().Nights()
}

// Validate checks dates, then stay length, then guest count. Only the first
// failure is reported.
func Validate(d Draft) error {
	if d.CheckIn.IsZero() || d.CheckOut.IsZero() {
		return ErrMissingDates
	}

	if d.Nights() < 1 {
		return ErrStayTooShort
	}

	if d.GuestCount < 1 {
		return ErrInvalidGuestCount
	}

	return nil
}

// Parse builds a Draft from form values. Blank dates stay zero so Validate
// reports them as missing.
func Parse(checkIn, checkOut string, guestCount int, loc *time.Location) (Draft, error) {
	in, err := daterange.ParseDate(checkIn, loc)
	if err != nil {
		return Draft{}, fmt.Errorf("check-in: %w", err)
	}

	out, err := daterange.ParseDate(checkOut, loc)
	if err != nil {
		return Draft{}, fmt.Errorf("check-out: %w", err)
	}

	return Draft{CheckIn: in, CheckOut: out, GuestCount: guestCount}, nil
}
