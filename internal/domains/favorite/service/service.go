package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/infras/otel"
	"staybook/internal/domains/favorite/model/dto"
	"staybook/internal/domains/favorite/repository"
	listingModel "staybook/internal/domains/listing/model"
	listingRepo "staybook/internal/domains/listing/repository"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"

	"github.com/rs/zerolog/log"
)

type Favorite interface {
	Add(ctx context.Context, listingID string) error
	Remove(ctx context.Context, listingID string) error
	List(ctx context.Context) (dto.GetFavoritesResponse, error)
	IDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

type serviceImpl struct {
	repo        repository.Favorite
	listingRepo listingRepo.Listing
	otel        otel.Otel
}

func New(repo repository.Favorite, listingRepo listingRepo.Listing, otel otel.Otel) Favorite {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Add(ctx context.Context, listingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.listingRepo.Exist(ctx, shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check listing existence")

		return fmt.Errorf("failed to check listing existence: %w", err)
	}

	if !exist {
		return failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return s.repo.Add(ctx, user, listingID) //nolint:wrapcheck
}

func (s *serviceImpl) Remove(ctx context.Context, listingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.repo.Remove(ctx, user, listingID) //nolint:wrapcheck
}

// List returns the caller's favorite listings that are still active.
func (s *serviceImpl) List(ctx context.Context) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ids, err := s.repo.IDs(ctx, user)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if len(ids) == 0 {
		res.FromModels(nil)

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: listingModel.FieldID, Operator: gDto.FilterOperatorIn, Value: ids, Table: listingModel.TableName},
			gDto.Filter{Field: listingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: listingModel.StatusActive, Table: listingModel.TableName},
		},
	}

	listings, err := s.listingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorite listings")

		return res, fmt.Errorf("failed to get favorite listings: %w", err)
	}

	res.FromModels(listings)

	return res, nil
}

// IDs returns the favorite set of a user in the shape the search engine takes.
func (s *serviceImpl) IDs(ctx context.Context, userID string) (set map[string]struct{}, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IDs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err := s.repo.IDs(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}
