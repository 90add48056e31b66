package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staybook/config"
	otelMocks "staybook/infras/otel/mocks"
	commentMocks "staybook/internal/domains/comment/mocks"
	"staybook/internal/domains/comment/model"
	"staybook/internal/domains/comment/model/dto"
	"staybook/internal/domains/comment/service"
	listingMocks "staybook/internal/domains/listing/mocks"
	listingModel "staybook/internal/domains/listing/model"
	reservationMocks "staybook/internal/domains/reservation/mocks"
	reservationModel "staybook/internal/domains/reservation/model"
	"staybook/shared/cache"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
)

type fixture struct {
	repo            *commentMocks.MockComment
	reservationRepo *reservationMocks.MockReservation
	listingRepo     *listingMocks.MockListing
	svc             service.Comment
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		repo:            commentMocks.NewMockComment(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		listingRepo:     listingMocks.NewMockListing(ctrl),
	}

	f.svc = service.New(f.repo, f.reservationRepo, f.listingRepo, cfg, cache.NewRedisCache(client, otelMocks.NewOtel()), otelMocks.NewOtel())

	return f
}

func as(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func TestCommentService_Create(t *testing.T) {
	stay := reservationModel.Reservation{ID: "r1", ListingID: "L1", GuestID: "g1", Status: reservationModel.StatusCompleted}

	tests := []struct {
		name      string
		user      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "guest comments a completed stay",
			user: "g1",
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Comment) error {
					assert.Equal(t, "L1", c.ListingID)
					assert.Equal(t, 4, c.Rating)

					return nil
				})
			},
		},
		{
			name: "stay not completed yet",
			user: "g1",
			setupMock: func(f fixture) {
				pending := stay
				pending.Status = reservationModel.StatusConfirmed
				f.reservationRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "someone else's stay",
			user: "g2",
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "second comment on the same stay",
			user: "g1",
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown reservation",
			user: "g1",
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservationModel.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			user: "g1",
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(as(tt.user), dto.CreateCommentRequest{Rating: 4, Content: "Lovely place"}, "r1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "r1", res.ReservationID)
			assert.Nil(t, res.Reply)
		})
	}
}

func TestCommentService_Reply(t *testing.T) {
	comment := model.Comment{ID: "c1", ListingID: "L1", GuestID: "g1", Rating: 5}
	listing := listingModel.Listing{ID: "L1", HostID: "h1"}

	t.Run("host replies once", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(comment, nil)
		f.listingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listing, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Thanks!", fields[model.FieldReply])
				assert.Contains(t, fields, model.FieldRepliedAt)

				return nil
			})

		res, err := f.svc.Reply(as("h1"), dto.ReplyCommentRequest{Reply: "Thanks!"}, "c1")

		require.NoError(t, err)
		require.NotNil(t, res.Reply)
		assert.Equal(t, "Thanks!", *res.Reply)
		assert.NotNil(t, res.RepliedAt)
	})

	t.Run("already replied", func(t *testing.T) {
		f := newFixture(t)

		reply := "Already answered"
		answered := comment
		answered.Reply = &reply

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(answered, nil)
		f.listingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listing, nil)

		_, err := f.svc.Reply(as("h1"), dto.ReplyCommentRequest{Reply: "Again"}, "c1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("not the host", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(comment, nil)
		f.listingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listing, nil)

		_, err := f.svc.Reply(as("g1"), dto.ReplyCommentRequest{Reply: "Me too"}, "c1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestCommentService_AverageRating(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{name: "no comments", raw: 0, want: 0},
		{name: "rounded down", raw: 4.333333, want: 4.3},
		{name: "rounded up", raw: 3.666666, want: 3.7},
		{name: "exact", raw: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().AverageRating(gomock.Any(), "L1").Return(tt.raw, nil)

			got, err := f.svc.AverageRating(context.Background(), "L1")

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestCommentService_GetByListing(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Comment{
		{ID: "c1", ListingID: "L1", Rating: 4},
		{ID: "c2", ListingID: "L1", Rating: 5},
	}, nil)
	f.repo.EXPECT().AverageRating(gomock.Any(), "L1").Return(4.5, nil)

	res, err := f.svc.GetByListing(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "L1")

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Comments, 2)
	assert.InDelta(t, 4.5, res.AverageRating, 0.0001)
}

func TestRoundRating(t *testing.T) {
	assert.InDelta(t, 4.0, service.RoundRating(3.95), 0.0001)
	assert.InDelta(t, 2.5, service.RoundRating(2.45), 0.0001)
}
