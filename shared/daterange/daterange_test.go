package daterange_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/shared/daterange"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := time.Parse(daterange.LayoutDate, value)
	require.NoError(t, err)

	return d
}

func span(t *testing.T, start, end string) daterange.Range {
	t.Helper()

	return daterange.New(date(t, start), date(t, end))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    daterange.Range
		b    daterange.Range
		want bool
	}{
		{
			name: "partial overlap",
			a:    span(t, "2024-03-10", "2024-03-15"),
			b:    span(t, "2024-03-12", "2024-03-20"),
			want: true,
		},
		{
			name: "disjoint after",
			a:    span(t, "2024-03-10", "2024-03-15"),
			b:    span(t, "2024-03-16", "2024-03-20"),
			want: false,
		},
		{
			name: "checkout day equals check-in day",
			a:    span(t, "2024-03-10", "2024-03-15"),
			b:    span(t, "2024-03-15", "2024-03-20"),
			want: true,
		},
		{
			name: "contained",
			a:    span(t, "2024-03-01", "2024-03-31"),
			b:    span(t, "2024-03-12", "2024-03-13"),
			want: true,
		},
		{
			name: "disjoint before",
			a:    span(t, "2024-03-10", "2024-03-15"),
			b:    span(t, "2024-03-01", "2024-03-09"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daterange.Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, daterange.Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlapsItself(t *testing.T) {
	ranges := []daterange.Range{
		span(t, "2024-03-10", "2024-03-15"),
		span(t, "2024-05-01", "2024-05-01"),
	}

	for _, r := range ranges {
		assert.True(t, r.Overlaps(r), "range %v should overlap itself", r)
	}

	// Inverted ranges are rejected at the request boundary; the predicate
	// itself does not special-case them.
	inverted := span(t, "2024-06-10", "2024-06-01")
	assert.False(t, inverted.Overlaps(inverted))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 5, span(t, "2024-03-10", "2024-03-15").Nights())
	assert.Equal(t, 0, span(t, "2024-05-01", "2024-05-01").Nights())
	assert.Equal(t, -2, span(t, "2024-05-03", "2024-05-01").Nights())

	partial := daterange.New(date(t, "2024-05-01"), date(t, "2024-05-01").Add(23*time.Hour))
	assert.Equal(t, 0, partial.Nights())
}

func TestNightsAcrossDaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	springForward := daterange.New(
		time.Date(2024, 3, 10, 0, 0, 0, 0, ny),
		time.Date(2024, 3, 11, 0, 0, 0, 0, ny),
	)
	assert.Equal(t, 1, springForward.Nights())

	around := daterange.New(
		time.Date(2024, 3, 9, 0, 0, 0, 0, ny),
		time.Date(2024, 3, 12, 0, 0, 0, 0, ny),
	)
	assert.Equal(t, 3, around.Nights())

	fallBack := daterange.New(
		time.Date(2024, 11, 3, 0, 0, 0, 0, ny),
		time.Date(2024, 11, 4, 0, 0, 0, 0, ny),
	)
	assert.Equal(t, 1, fallBack.Nights())
}

func TestDate(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	assert.Equal(t, date(t, "2024-05-01"), daterange.Date(time.Date(2024, 5, 1, 23, 59, 0, 0, jakarta)))
	assert.Equal(t, date(t, "2024-05-01"), daterange.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, jakarta)))
	assert.True(t, daterange.Date(time.Time{}).IsZero())
}

func TestValid(t *testing.T) {
	assert.True(t, span(t, "2024-03-10", "2024-03-15").Valid())
	assert.False(t, span(t, "2024-03-10", "2024-03-10").Valid())
	assert.False(t, span(t, "2024-03-15", "2024-03-10").Valid())
}

func TestIntersect(t *testing.T) {
	got, ok := span(t, "2024-03-10", "2024-03-15").Intersect(span(t, "2024-03-12", "2024-03-20"))
	require.True(t, ok)
	assert.Equal(t, span(t, "2024-03-12", "2024-03-15"), got)

	_, ok = span(t, "2024-03-10", "2024-03-15").Intersect(span(t, "2024-03-16", "2024-03-20"))
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	r := span(t, "2024-03-10", "2024-03-15")

	assert.True(t, r.Contains(date(t, "2024-03-10")))
	assert.True(t, r.Contains(date(t, "2024-03-15")))
	assert.False(t, r.Contains(date(t, "2024-03-16")))
}

func TestParseDate(t *testing.T) {
	got, err := daterange.ParseDate("2024-05-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-05-01"), got)

	got, err = daterange.ParseDate("2024-05-01T00:00:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-05-01"), got)

	got, err = daterange.ParseDate("   ", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = daterange.ParseDate("01/05/2024", time.UTC)
	assert.ErrorIs(t, err, daterange.ErrInvalidDate)
}

func TestParseDateInZone(t *testing.T) {
	for _, zone := range []string{"America/Bogota", "Asia/Jakarta", "America/New_York"} {
		t.Run(zone, func(t *testing.T) {
			loc, err := time.LoadLocation(zone)
			require.NoError(t, err)

			got, err := daterange.ParseDate("2024-03-15", loc)
			require.NoError(t, err)
			assert.Equal(t, date(t, "2024-03-15"), got)

			got, err = daterange.ParseDate("2024-03-15T22:00:00", loc)
			require.NoError(t, err)
			assert.Equal(t, date(t, "2024-03-15"), got)
		})
	}

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	got, err := daterange.ParseDate("2024-05-01T23:30:00Z", jakarta)
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-05-02"), got)
}

func TestOverlapsStoredDate(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// Postgres DATE columns decode as midnight UTC.
	booked := span(t, "2024-03-10", "2024-03-15")

	checkIn, err := daterange.ParseDate("2024-03-15", bogota)
	require.NoError(t, err)
	checkOut, err := daterange.ParseDate("2024-03-20", bogota)
	require.NoError(t, err)

	assert.True(t, booked.Overlaps(daterange.New(checkIn, checkOut)))
}
