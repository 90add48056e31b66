// Package daterange models stay windows and the overlap rule used when
// reconciling a candidate stay against existing reservations.
//
// Boundaries are inclusive: a stay that checks out on the same day another
// one checks in is treated as conflicting.
//
// Ranges hold calendar dates stored as midnight UTC, the form lib/pq returns
// for DATE columns. Dates parsed in the application timezone are brought to
// the same form, so the zone never shifts a boundary or a night count.
package daterange

import (
	"errors"
	"strings"
	"time"
)

const (
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02T15:04:05"

	day = 24 * time.Hour
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD or YYYY-MM-DDTHH:mm:ss")

// Range is a pair of calendar dates. Start before End is not enforced.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New truncates start and end to their calendar dates.
func New(start, end time.Time) Range {
	return Range{Start: Date(start), End: Date(end)}
}

// Date returns the calendar day of t, read in t's own location, as midnight
// UTC. The zero time stays zero.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether a and b share at least one instant, boundaries included.
func Overlaps(a, b Range) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

func (r Range) Overlaps(other Range) bool {
	return Overlaps(r, other)
}

// Valid reports whether Start is strictly before End.
func (r Range) Valid() bool {
	return r.Start.Before(r.End)
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Nights returns the calendar days between Start and End. It is negative
// when End precedes Start. Daylight saving changes do not affect the count.
func (r Range) Nights() int {
	return int(Date(r.End).Sub(Date(r.Start)) / day)
}

func (r Range) Contains(t time.Time) bool {
	t = Date(t)

	return !t.Before(r.Start) && !t.After(r.End)
}

// Intersect returns the common part of r and other, and false when they do
// not overlap.
func (r Range) Intersect(other Range) (Range, bool) {
	if !Overlaps(r, other) {
		return Range{}, false
	}

	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}

	end := r.End
	if other.End.Before(end) {
		end = other.End
	}

	return Range{Start: start, End: end}, true
}

// ParseDate accepts a plain date or a local date-time as sent by booking forms
// and returns the calendar date it falls on in loc. An empty value yields the
// zero time and no error.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range []string{LayoutDate, LayoutDateTime, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return Date(t.In(loc)), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}
