// Package timezone pins every timestamp the service produces or parses to the
// location configured by APP_TIMEZONE. Reservation dates are calendar dates in
// that location, so nights are counted the same way regardless of host clock.
package timezone

import (
	"staybook/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	location *time.Location
	once     sync.Once
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")

		loc = time.UTC
	}

	location = loc
}

// GetLocation returns the configured location, loading it on first use.
func GetLocation() *time.Location {
	once.Do(load)

	return location
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value with layout in the configured location.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
