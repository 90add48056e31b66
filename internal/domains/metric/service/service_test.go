package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staybook/config"
	otelMocks "staybook/infras/otel/mocks"
	commentMocks "staybook/internal/domains/comment/service/mocks"
	listingMocks "staybook/internal/domains/listing/mocks"
	listingModel "staybook/internal/domains/listing/model"
	"staybook/internal/domains/metric/model/dto"
	"staybook/internal/domains/metric/service"
	reservationMocks "staybook/internal/domains/reservation/mocks"
	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared/cache"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/timezone"
)

type fixture struct {
	listingRepo     *listingMocks.MockListing
	reservationRepo *reservationMocks.MockReservation
	comments        *commentMocks.MockComment
	redis           *miniredis.Miniredis
	svc             service.Metric
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		listingRepo:     listingMocks.NewMockListing(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		comments:        commentMocks.NewMockComment(ctrl),
		redis:           server,
	}

	f.svc = service.New(f.listingRepo, f.reservationRepo, f.comments, cfg, cache.NewRedisCache(client, otelMocks.NewOtel()), otelMocks.NewOtel())

	return f
}

func as(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func day(value string) time.Time {
	t, _ := timezone.Parse("2006-01-02", value)

	return t
}

func stay(listingID, checkIn, checkOut string, total float64, status reservationModel.Status) reservationModel.Reservation {
	return reservationModel.Reservation{
		ListingID: listingID,
		CheckIn:   day(checkIn),
		CheckOut:  day(checkOut),
		Total:     total,
		Status:    status,
	}
}

func TestMetricService_ForListing(t *testing.T) {
	listing := listingModel.Listing{ID: "L1", HostID: "h1", Title: "Loft"}
	window := dto.MetricRequest{From: "2024-03-01", To: "2024-03-10"}

	tests := []struct {
		name      string
		user      string
		req       dto.MetricRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "owner gets figures",
			user: "h1",
			req:  window,
			setupMock: func(f fixture) {
				f.listingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listing, nil)
				f.reservationRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]reservationModel.Reservation{
					stay("L1", "2024-03-02", "2024-03-07", 500, reservationModel.StatusCompleted),
					stay("L1", "2024-03-08", "2024-03-09", 100, reservationModel.StatusCancelled),
				}, nil)
				f.comments.EXPECT().AverageRating(gomock.Any(), "L1").Return(4.5, nil)
			},
		},
		{
			name:      "missing to",
			user:      "h1",
			req:       dto.MetricRequest{From: "2024-03-01"},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "from after to",
			user:      "h1",
			req:       dto.MetricRequest{From: "2024-03-10", To: "2024-03-01"},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not the owner",
			user: "h2",
			req:  window,
			setupMock: func(f fixture) {
				f.listingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listing, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown listing",
			user: "h1",
			req:  window,
			setupMock: func(f fixture) {
				f.listingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingModel.Listing{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.ForListing(as(tt.user), tt.req, "L1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "L1", res.ListingID)
			assert.Equal(t, "Loft", res.Title)
			assert.Equal(t, 1, res.TotalReservations)
			assert.InDelta(t, 500.0, res.TotalIncome, 0.001)
			assert.InDelta(t, 4.5, res.AverageRating, 0.001)
			assert.InDelta(t, 0.5, res.OccupancyRate, 0.001)
			assert.Equal(t, "2024-03-01", res.From)
			assert.Equal(t, "2024-03-10", res.To)
		})
	}
}

func TestMetricService_ForHost(t *testing.T) {
	f := newFixture(t)

	listings := []listingModel.Listing{
		{ID: "L1", HostID: "h1", Title: "Loft"},
		{ID: "L2", HostID: "h1", Title: "Cabin"},
	}

	f.listingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(listings, nil)
	f.reservationRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]reservationModel.Reservation, error) {
			_, args := filter.GetWhereClause()
			if args[reservationModel.FieldListingID] == "L2" {
				return nil, errors.New("database error")
			}

			return []reservationModel.Reservation{stay("L1", "2024-03-02", "2024-03-04", 200, reservationModel.StatusConfirmed)}, nil
		}).Times(2)
	f.comments.EXPECT().AverageRating(gomock.Any(), "L1").Return(4.0, nil)

	res, err := f.svc.ForHost(as("h1"), dto.MetricRequest{From: "2024-03-01", To: "2024-03-10"})

	require.NoError(t, err)
	require.Len(t, res.Listings, 2)
	assert.Equal(t, 1, res.TotalReservations)
	assert.InDelta(t, 200.0, res.TotalIncome, 0.001)

	assert.Equal(t, "L1", res.Listings[0].ListingID)
	assert.Equal(t, 1, res.Listings[0].TotalReservations)

	assert.Equal(t, "L2", res.Listings[1].ListingID)
	assert.Equal(t, "Cabin", res.Listings[1].Title)
	assert.Zero(t, res.Listings[1].TotalReservations)
	assert.Zero(t, res.Listings[1].OccupancyRate)
}

func TestMetricService_Invalidate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.redis.Set("metric:listing:L1:2024-03-01:2024-03-10", "{}"))
	require.NoError(t, f.redis.Set("metric:listing:L2:2024-03-01:2024-03-10", "{}"))

	f.svc.Invalidate(context.Background(), "L1")

	assert.False(t, f.redis.Exists("metric:listing:L1:2024-03-01:2024-03-10"))
	assert.True(t, f.redis.Exists("metric:listing:L2:2024-03-01:2024-03-10"))
}
