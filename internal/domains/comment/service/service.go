package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"staybook/config"
	"staybook/infras/otel"
	"staybook/internal/domains/comment/model"
	"staybook/internal/domains/comment/model/dto"
	"staybook/internal/domains/comment/repository"
	listingModel "staybook/internal/domains/listing/model"
	listingRepo "staybook/internal/domains/listing/repository"
	reservationModel "staybook/internal/domains/reservation/model"
	reservationRepo "staybook/internal/domains/reservation/repository"
	"staybook/shared"
	"staybook/shared/cache"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetByListing = "comment:listing"
	cacheAverage      = "comment:average"
)

type Comment interface {
	Create(ctx context.Context, req dto.CreateCommentRequest, reservationID string) (dto.CommentResponse, error)
	Reply(ctx context.Context, req dto.ReplyCommentRequest, id string) (dto.CommentResponse, error)
	GetByListing(ctx context.Context, req gDto.QueryParams, listingID string) (dto.GetCommentsResponse, error)
	AverageRating(ctx context.Context, listingID string) (float64, error)
}

type serviceImpl struct {
	repo            repository.Comment
	reservationRepo reservationRepo.Reservation
	listingRepo     listingRepo.Listing
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Comment,
	reservationRepo reservationRepo.Reservation,
	listingRepo listingRepo.Listing,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Comment {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		listingRepo:     listingRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCommentRequest, reservationID string) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.GuestID != user {
		return res, failure.Forbidden("only the guest of the reservation can comment") // nolint:wrapcheck
	}

	if reservation.Status != reservationModel.StatusCompleted {
		return res, failure.BadRequestFromString("only completed stays can be commented") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(reservationID, model.FieldReservationID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check comment existence")

		return res, fmt.Errorf("failed to check comment existence: %w", err)
	}

	if exist {
		return res, failure.Conflict("reservation already has a comment") // nolint:wrapcheck
	}

	comment := req.ToModel(reservation)

	if err = s.repo.Insert(ctx, comment); err != nil {
		if failure.IsPostgresCode(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("reservation already has a comment") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	s.invalidate(ctx, comment.ListingID)

	res.FromModel(comment)

	return res, nil
}

func (s *serviceImpl) Reply(ctx context.Context, req dto.ReplyCommentRequest, id string) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	comment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comment")

		return res, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.ID == constant.Empty {
		return res, failure.NotFound("comment not found") // nolint:wrapcheck
	}

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(comment.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.HostID != user {
		return res, failure.Forbidden("only the host of the listing can reply") // nolint:wrapcheck
	}

	if comment.Reply != nil {
		return res, failure.Conflict("comment already has a reply") // nolint:wrapcheck
	}

	update := dto.UpdateReplyRequest{Reply: req.Reply, RepliedAt: timezone.Now()}

	if err = s.repo.Update(ctx, shared.TransformFields(update, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to reply comment")

		return res, fmt.Errorf("failed to reply comment: %w", err)
	}

	comment.Reply = &update.Reply
	comment.RepliedAt = &update.RepliedAt

	s.invalidate(ctx, comment.ListingID)

	res.FromModel(comment)

	return res, nil
}

func (s *serviceImpl) GetByListing(ctx context.Context, req gDto.QueryParams, listingID string) (res dto.GetCommentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByListing")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(listingID, model.FieldListingID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetByListing, listingID), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for comments")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count comments")

		return res, fmt.Errorf("failed to count comments: %w", err)
	}

	comments, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comments")

		return res, fmt.Errorf("failed to get comments: %w", err)
	}

	average, err := s.AverageRating(ctx, listingID)
	if err != nil {
		return res, err
	}

	res.FromModels(comments, total, req.Limit)
	res.AverageRating = average

	shared.SaveCacheAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

// AverageRating is rounded to one decimal and 0 for a listing without comments.
func (s *serviceImpl) AverageRating(ctx context.Context, listingID string) (average float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AverageRating")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheAverage, listingID)

	if err = s.cache.Get(ctx, cacheKey, &average); err == nil {
		return average, nil
	}

	raw, err := s.repo.AverageRating(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get average rating")

		return 0, fmt.Errorf("failed to get average rating: %w", err)
	}

	average = RoundRating(raw)

	shared.SaveCacheAsync(ctx, s.cache, cacheKey, average, s.cfg.Cache.TTL)

	return average, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, listingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheAverage, listingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete average rating cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetByListing, listingID))
	}()
}

func RoundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
