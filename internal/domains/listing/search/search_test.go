package search_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domains/listing/model"
	"staybook/internal/domains/listing/search"
	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared/daterange"
)

func day(value string) *time.Time {
	d, _ := time.Parse("2006-01-02", value)

	return &d
}

func str(value string) *string {
	return &value
}

func ids(listings []model.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}

	return out
}

func fixtures() []model.Listing {
	return []model.Listing{
		{
			ID:            "L1",
			City:          "Bogotá",
			PricePerNight: 120,
			Amenities:     []string{"WiFi rápido", "Piscina climatizada"},
			Reservations: []reservationModel.Reservation{
				{ID: "r1", ListingID: "L1", CheckIn: *day("2024-03-10"), CheckOut: *day("2024-03-15")},
			},
		},
		{
			ID:            "L2",
			City:          "Medellín",
			PricePerNight: 80,
			Amenities:     []string{"wifi"},
		},
		{
			ID:            "L3",
			City:          "bogota",
			PricePerNight: 2_000_000,
			Amenities:     []string{"Mascotas", "wifi", "piscina"},
		},
		{
			ID:            "L4",
			City:          "Cartagena",
			PricePerNight: 300,
			Reservations: []reservationModel.Reservation{
				{ID: "r4", ListingID: "L4", CheckIn: *day("2024-03-01"), CheckOut: *day("2024-03-02"), Status: reservationModel.StatusCancelled},
			},
		},
	}
}

func TestApplyDefaultCriteriaIsIdentity(t *testing.T) {
	listings := fixtures()

	got := search.Apply(listings, search.DefaultCriteria())

	assert.Equal(t, listings, got)
	assert.Equal(t, []string{"L1", "L2", "L3", "L4"}, ids(got))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria func(c *search.Criteria)
		want     []string
	}{
		{
			name:     "city substring ignores case",
			criteria: func(c *search.Criteria) { c.City = str("BOG") },
			want:     []string{"L1"},
		},
		{
			name:     "blank city is inactive",
			criteria: func(c *search.Criteria) { c.City = str("  ") },
			want:     []string{"L1", "L2", "L3", "L4"},
		},
		{
			name:     "price range",
			criteria: func(c *search.Criteria) { c.PriceMin, c.PriceMax = 100, 300 },
			want:     []string{"L1", "L4"},
		},
		{
			name:     "default price range applies once another dimension is active",
			criteria: func(c *search.Criteria) { c.City = str("bog") },
			want:     []string{"L1"},
		},
		{
			name:     "every amenity must match",
			criteria: func(c *search.Criteria) { c.Amenities = []string{"wifi", "piscina"} },
			want:     []string{"L1"},
		},
		{
			name: "amenities with a wide price range",
			criteria: func(c *search.Criteria) {
				c.Amenities = []string{"wifi", "piscina"}
				c.PriceMax = 5_000_000
			},
			want: []string{"L1", "L3"},
		},
		{
			name: "dates exclude booked listings",
			criteria: func(c *search.Criteria) {
				c.CheckIn, c.CheckOut = day("2024-03-12"), day("2024-03-20")
			},
			want: []string{"L2", "L4"},
		},
		{
			name: "dates touching checkout day conflict",
			criteria: func(c *search.Criteria) {
				c.CheckIn, c.CheckOut = day("2024-03-15"), day("2024-03-20")
			},
			want: []string{"L2", "L4"},
		},
		{
			name: "dates after checkout day are free",
			criteria: func(c *search.Criteria) {
				c.CheckIn, c.CheckOut = day("2024-03-16"), day("2024-03-20")
			},
			want: []string{"L1", "L2", "L4"},
		},
		{
			name: "cancelled reservations still block",
			criteria: func(c *search.Criteria) {
				c.CheckIn, c.CheckOut = day("2024-03-01"), day("2024-03-05")
				c.PriceMax = 5_000_000
			},
			want: []string{"L1", "L2", "L3"},
		},
		{
			name:     "only check-in given leaves dates inactive",
			criteria: func(c *search.Criteria) { c.CheckIn = day("2024-03-12") },
			want:     []string{"L1", "L2", "L3", "L4"},
		},
		{
			name: "favorites",
			criteria: func(c *search.Criteria) {
				c.Favorites = map[string]struct{}{"L2": {}, "L3": {}}
			},
			want: []string{"L2"},
		},
		{
			name:     "empty favorites set matches nothing",
			criteria: func(c *search.Criteria) { c.Favorites = map[string]struct{}{} },
			want:     []string{},
		},
		{
			name:     "no match is empty, not nil",
			criteria: func(c *search.Criteria) { c.City = str("Lima") },
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := search.DefaultCriteria()
			tt.criteria(&criteria)

			got := search.Apply(fixtures(), criteria)

			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	criteria := search.DefaultCriteria()
	criteria.Amenities = []string{"wifi"}
	criteria.CheckIn, criteria.CheckOut = day("2024-03-12"), day("2024-03-20")

	once := search.Apply(fixtures(), criteria)
	twice := search.Apply(once, criteria)

	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, ids(once), ids(search.Apply(fixtures(), criteria)))
}

func TestCriteriaActive(t *testing.T) {
	assert.False(t, search.DefaultCriteria().Active())
	assert.False(t, search.Criteria{PriceMin: 0, PriceMax: 1_000_000}.Active())

	c := search.DefaultCriteria()
	c.Amenities = []string{"wifi"}
	assert.True(t, c.Active())

	c = search.DefaultCriteria()
	c.CheckOut = day("2024-03-01")
	assert.False(t, c.Active())
}

func TestNewCriteria_ConfiguredBoundsAreIdentity(t *testing.T) {
	criteria := search.NewCriteria(50, 500)
	assert.False(t, criteria.Active())

	listings := fixtures()
	assert.Equal(t, ids(listings), ids(search.Apply(listings, criteria)))

	criteria.PriceMax = 400
	assert.True(t, criteria.Active())
	assert.Equal(t, []string{"L1", "L2", "L4"}, ids(search.Apply(fixtures(), criteria)))
}

func TestApply_StoredDatesAgainstZonedCandidates(t *testing.T) {
	checkIn, err := pq.ParseTimestamp(nil, "2024-03-10")
	require.NoError(t, err)
	checkOut, err := pq.ParseTimestamp(nil, "2024-03-15")
	require.NoError(t, err)

	listings := []model.Listing{{
		ID:            "L1",
		PricePerNight: 100,
		Reservations: []reservationModel.Reservation{
			{ID: "r1", ListingID: "L1", CheckIn: checkIn, CheckOut: checkOut},
		},
	}}

	stays := []struct {
		name      string
		from, to  string
		available bool
	}{
		{name: "check-in on the checkout day", from: "2024-03-15", to: "2024-03-20"},
		{name: "checkout on the check-in day", from: "2024-03-05", to: "2024-03-10"},
		{name: "day after checkout", from: "2024-03-16", to: "2024-03-20", available: true},
		{name: "day before check-in", from: "2024-03-01", to: "2024-03-09", available: true},
	}

	for _, zone := range []string{"UTC", "America/Bogota", "Asia/Jakarta", "Pacific/Kiritimati"} {
		loc, err := time.LoadLocation(zone)
		require.NoError(t, err)

		for _, tt := range stays {
			t.Run(zone+"/"+tt.name, func(t *testing.T) {
				from, err := daterange.ParseDate(tt.from, loc)
				require.NoError(t, err)
				to, err := daterange.ParseDate(tt.to, loc)
				require.NoError(t, err)

				criteria := search.DefaultCriteria()
				criteria.CheckIn, criteria.CheckOut = &from, &to

				got := search.Apply(listings, criteria)
				assert.Equal(t, tt.available, len(got) == 1)
			})
		}
	}
}
