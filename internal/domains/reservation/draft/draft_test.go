package draft_test

import (
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domains/reservation/draft"
)

func day(value string) time.Time {
	d, _ := time.Parse("2006-01-02", value)

	return d
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   draft.Draft
		wantErr error
	}{
		{
			name:    "valid stay",
			draft:   draft.Draft{CheckIn: day("2024-05-01"), CheckOut: day("2024-05-04"), GuestCount: 2},
			wantErr: nil,
		},
		{
			name:    "missing check-in",
			draft:   draft.Draft{CheckOut: day("2024-05-04"), GuestCount: 2},
			wantErr: draft.ErrMissingDates,
		},
		{
			name:    "missing check-out",
			draft:   draft.Draft{CheckIn: day("2024-05-01"), GuestCount: 2},
			wantErr: draft.ErrMissingDates,
		},
		{
			name:    "same day",
			draft:   draft.Draft{CheckIn: day("2024-05-01"), CheckOut: day("2024-05-01"), GuestCount: 2},
			wantErr: draft.ErrStayTooShort,
		},
		{
			name:    "check-out before check-in",
			draft:   draft.Draft{CheckIn: day("2024-05-04"), CheckOut: day("2024-05-01"), GuestCount: 2},
			wantErr: draft.ErrStayTooShort,
		},
		{
			name: "less than a full day",
			draft: draft.Draft{
				CheckIn:    day("2024-05-01"),
				CheckOut:   day("2024-05-01").Add(20 * time.Hour),
				GuestCount: 1,
			},
			wantErr: draft.ErrStayTooShort,
		},
		{
			name:    "zero guests",
			draft:   draft.Draft{CheckIn: day("2024-05-01"), CheckOut: day("2024-05-02"), GuestCount: 0},
			wantErr: draft.ErrInvalidGuestCount,
		},
		{
			name:    "missing dates wins over guest count",
			draft:   draft.Draft{GuestCount: 0},
			wantErr: draft.ErrMissingDates,
		},
		{
			name:    "stay length wins over guest count",
			draft:   draft.Draft{CheckIn: day("2024-05-01"), CheckOut: day("2024-05-01"), GuestCount: -1},
			wantErr: draft.ErrStayTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := draft.Validate(tt.draft)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidationErrorKind(t *testing.T) {
	err := fmt.Errorf("reservation: %w", draft.Validate(draft.Draft{}))

	var vErr *draft.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, draft.KindMissingDates, vErr.Kind)
	assert.False(t, errors.Is(err, draft.ErrStayTooShort))
}

func TestParse(t *testing.T) {
	d, err := draft.Parse("2024-05-01", "2024-05-03T00:00:00", 2, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Nights())
	assert.NoError(t, draft.Validate(d))

	d, err = draft.Parse("", "2024-05-03", 2, time.UTC)
	require.NoError(t, err)
	assert.ErrorIs(t, draft.Validate(d), draft.ErrMissingDates)

	_, err = draft.Parse("tomorrow", "2024-05-03", 2, time.UTC)
	assert.Error(t, err)
}

func TestParseAcrossDaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d, err := draft.Parse("2024-03-10", "2024-03-11", 2, ny)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Nights())
	assert.NoError(t, draft.Validate(d))

	d, err = draft.Parse("2024-11-03", "2024-11-05", 2, ny)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Nights())
}
