package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/config"
	"staybook/infras/otel"
	commentService "staybook/internal/domains/comment/service"
	listingModel "staybook/internal/domains/listing/model"
	listingRepo "staybook/internal/domains/listing/repository"
	"staybook/internal/domains/metric/model"
	"staybook/internal/domains/metric/model/dto"
	reservationModel "staybook/internal/domains/reservation/model"
	reservationRepo "staybook/internal/domains/reservation/repository"
	"staybook/shared"
	"staybook/shared/cache"
	"staybook/shared/constant"
	"staybook/shared/daterange"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	cacheListingMetric = "metric:listing"

	hostFanOut = 8
)

type Metric interface {
	ForListing(ctx context.Context, req dto.MetricRequest, listingID string) (dto.MetricResponse, error)
	ForHost(ctx context.Context, req dto.MetricRequest) (dto.HostMetricResponse, error)
	Invalidate(ctx context.Context, listingID string)
}

type serviceImpl struct {
	listingRepo     listingRepo.Listing
	reservationRepo reservationRepo.Reservation
	comments        commentService.Comment
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	listingRepo listingRepo.Listing,
	reservationRepo reservationRepo.Reservation,
	comments commentService.Comment,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Metric {
	return &serviceImpl{
		listingRepo:     listingRepo,
		reservationRepo: reservationRepo,
		comments:        comments,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) ForListing(ctx context.Context, req dto.MetricRequest, listingID string) (res dto.MetricResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForListing")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	from, to, err := req.Window()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if listing.HostID != user {
		return res, failure.ResourceRestrictedError
	}

	return s.summary(ctx, listing, from, to)
}

// ForHost reports every listing of the caller. A listing whose figures cannot
// be loaded is reported with zeros.
func (s *serviceImpl) ForHost(ctx context.Context, req dto.MetricRequest) (res dto.HostMetricResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForHost")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	from, to, err := req.Window()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	listings, err := s.listingRepo.GetAll(ctx, gDto.QueryParams{SortBy: listingModel.FieldCreatedAt, SortDir: gDto.SortDirAsc},
		shared.FilterByID(user, listingModel.FieldHostID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get host listings")

		return res, fmt.Errorf("failed to get host listings: %w", err)
	}

	metrics := make([]dto.MetricResponse, len(listings))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(hostFanOut)

	for i, listing := range listings {
		group.Go(func() error {
			metric, err := s.summary(gctx, listing, from, to)
			if err != nil {
				log.Warn().Err(err).Str("listing", listing.ID).Msg("failed to compute listing metrics, reporting zeros")

				metric = dto.MetricResponse{}
				metric.FromModel(model.Summary{ListingID: listing.ID}, from, to)
				metric.Title = listing.Title
			}

			metrics[i] = metric

			return nil
		})
	}

	_ = group.Wait()

	res.FromListings(metrics, from, to)

	return res, nil
}

func (s *serviceImpl) Invalidate(ctx context.Context, listingID string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheListingMetric, listingID))
}

func (s *serviceImpl) summary(ctx context.Context, listing listingModel.Listing, from, to time.Time) (res dto.MetricResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheListingMetric, listing.ID, from.Format(daterange.LayoutDate), to.Format(daterange.LayoutDate))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	window := model.Window(from, to)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: reservationModel.FieldListingID, Operator: gDto.FilterOperatorEq, Value: listing.ID, Table: reservationModel.TableName},
			gDto.Filter{Field: reservationModel.FieldCheckIn, Operator: gDto.FilterOperatorLessEq, Value: window.End, Table: reservationModel.TableName},
			gDto.Filter{Field: reservationModel.FieldCheckOut, Operator: gDto.FilterOperatorGreaterEq, Value: window.Start, Table: reservationModel.TableName},
		},
	}

	reservations, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for metrics")

		return res, fmt.Errorf("failed to get reservations for metrics: %w", err)
	}

	summary := model.Summarize(listing.ID, window, reservations)

	if summary.AverageRating, err = s.comments.AverageRating(ctx, listing.ID); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(summary, from, to)
	res.Title = listing.Title

	shared.SaveCacheAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}
