package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "staybook/infras/otel/mocks"
	favoriteMocks "staybook/internal/domains/favorite/mocks"
	"staybook/internal/domains/favorite/service"
	listingMocks "staybook/internal/domains/listing/mocks"
	listingModel "staybook/internal/domains/listing/model"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
)

func as(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func TestFavoriteService_Add(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *favoriteMocks.MockFavorite, listings *listingMocks.MockListing)
		wantCode  int
	}{
		{
			name: "existing listing",
			setupMock: func(repo *favoriteMocks.MockFavorite, listings *listingMocks.MockListing) {
				listings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Add(gomock.Any(), "g1", "L1").Return(nil)
			},
		},
		{
			name: "unknown listing",
			setupMock: func(_ *favoriteMocks.MockFavorite, listings *listingMocks.MockListing) {
				listings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := favoriteMocks.NewMockFavorite(ctrl)
			listings := listingMocks.NewMockListing(ctrl)
			tt.setupMock(repo, listings)

			err := service.New(repo, listings, otelMocks.NewOtel()).Add(as("g1"), "L1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestFavoriteService_List(t *testing.T) {
	t.Run("only active listings are loaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := favoriteMocks.NewMockFavorite(ctrl)
		listings := listingMocks.NewMockListing(ctrl)

		repo.EXPECT().IDs(gomock.Any(), "g1").Return([]string{"L1", "L2"}, nil)
		listings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]listingModel.Listing, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "listings.id IN (:id_0, :id_1)")
				assert.Equal(t, listingModel.StatusActive, args[listingModel.FieldStatus])

				return []listingModel.Listing{{ID: "L1", Status: listingModel.StatusActive}}, nil
			})

		res, err := service.New(repo, listings, otelMocks.NewOtel()).List(as("g1"))

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("no favorites skips the listing lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := favoriteMocks.NewMockFavorite(ctrl)
		listings := listingMocks.NewMockListing(ctrl)

		repo.EXPECT().IDs(gomock.Any(), "g1").Return(nil, nil)

		res, err := service.New(repo, listings, otelMocks.NewOtel()).List(as("g1"))

		require.NoError(t, err)
		assert.Empty(t, res.Listings)
		assert.NotNil(t, res.Listings)
	})
}

func TestFavoriteService_IDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := favoriteMocks.NewMockFavorite(ctrl)

	repo.EXPECT().IDs(gomock.Any(), "g1").Return([]string{"L1", "L3"}, nil)

	set, err := service.New(repo, listingMocks.NewMockListing(ctrl), otelMocks.NewOtel()).IDs(context.Background(), "g1")

	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"L1": {}, "L3": {}}, set)
}
