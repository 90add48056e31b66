package service

import (
	"context"
	"fmt"
	"staybook/config"
	"staybook/infras/metrics"
	"staybook/infras/otel"
	"staybook/infras/s3"
	commentService "staybook/internal/domains/comment/service"
	favoriteService "staybook/internal/domains/favorite/service"
	"staybook/internal/domains/listing/model"
	"staybook/internal/domains/listing/model/dto"
	"staybook/internal/domains/listing/repository"
	"staybook/internal/domains/listing/search"
	reservationModel "staybook/internal/domains/reservation/model"
	reservationRepo "staybook/internal/domains/reservation/repository"
	"staybook/shared"
	"staybook/shared/cache"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetListing    = "listing:get"
	cacheGetAllListing = "listing:get_all"
	cacheCountListing  = "listing:count"
)

type Listing interface {
	Create(ctx context.Context, req dto.CreateListingRequest) (dto.ListingResponse, error)
	Get(ctx context.Context, id string) (dto.ListingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetListingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetListingsResponse, error)
	GetTrash(ctx context.Context, req gDto.QueryParams) (dto.GetListingsResponse, error)
	Update(ctx context.Context, req dto.UpdateListingRequest, id string) error
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (dto.ListingResponse, error)
}

type serviceImpl struct {
	repo            repository.Listing
	reservationRepo reservationRepo.Reservation
	comments        commentService.Comment
	favorites       favoriteService.Favorite
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
	s3              s3.S3
}

func New(
	repo repository.Listing,
	reservationRepo reservationRepo.Reservation,
	comments commentService.Comment,
	favorites favoriteService.Favorite,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Listing {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		comments:        comments,
		favorites:       favorites,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
		s3:              s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListingRequest) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listing := req.ToModel(user)

	if err = s.repo.Insert(ctx, listing); err != nil {
		log.Error().Err(err).Msg("failed to create listing")

		return res, fmt.Errorf("failed to create listing: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(listing)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetListing, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listing")

		return res, nil
	}

	listing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	average, err := s.comments.AverageRating(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(listing)
	res.AverageRating = &average

	shared.SaveCacheAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

// GetAll lists active listings only; other statuses are never public.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append([]any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusActive, Table: model.TableName},
		}, filterGroups(filter)...),
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllListing, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listings")

		return res, nil
	}

	res, err = s.list(ctx, req, filter)
	if err != nil {
		return res, err
	}

	shared.SaveCacheAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.ownedWithStatus(ctx, req, model.StatusActive, model.StatusPending)
}

func (s *serviceImpl) GetTrash(ctx context.Context, req gDto.QueryParams) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTrash")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.ownedWithStatus(ctx, req, model.StatusInactive)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateListingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("nothing to update") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.owned(ctx, id); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if req.Latitude != nil {
		updatedFields[model.FieldLatitude] = *req.Latitude
	}

	if req.Longitude != nil {
		updatedFields[model.FieldLongitude] = *req.Longitude
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update listing")

		return fmt.Errorf("failed to update listing: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete moves the listing to the trash by marking it INACTIVE.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.owned(ctx, id)
	if err != nil {
		return err
	}

	if listing.Status == model.StatusInactive {
		return failure.BadRequestFromString("listing is already in the trash") // nolint:wrapcheck
	}

	return s.changeStatus(ctx, id, model.StatusInactive)
}

func (s *serviceImpl) Restore(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Restore")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.owned(ctx, id)
	if err != nil {
		return err
	}

	if listing.Status != model.StatusInactive {
		return failure.BadRequestFromString("only listings in the trash can be restored") // nolint:wrapcheck
	}

	return s.changeStatus(ctx, id, model.StatusActive)
}

// Search always reads listings and reservations fresh so availability never
// comes from a stale cache entry.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRequest) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	criteria, err := req.ToCriteria(s.priceBounds())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.FavoritesOnly {
		user, _ := ctx.Value(constant.ContextKeyUserID).(string)
		if user == constant.Empty {
			return res, failure.Unauthorized("login required to search favorites") // nolint:wrapcheck
		}

		if criteria.Favorites, err = s.favorites.IDs(ctx, user); err != nil {
			return res, err //nolint:wrapcheck
		}
	}

	listings, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc},
		shared.FilterByID(string(model.StatusActive), model.FieldStatus, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings for search")

		return res, fmt.Errorf("failed to get listings for search: %w", err)
	}

	_, withDates := criteria.Stay()
	if withDates {
		if err = s.attachReservations(ctx, listings); err != nil {
			return res, err
		}
	}

	found := search.Apply(listings, criteria)
	metrics.ObserveSearch(withDates, len(found))

	res.FromModels(found)

	return res, nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listing, err := s.owned(ctx, id)
	if err != nil {
		return res, err
	}

	key := model.PhotoKey(id, req.Photo.Filename)

	url, err := s.s3.Upload(ctx, key, req.Photo.Header.Get(constant.RequestHeaderContentType), req.PhotoFile, req.Photo.Size)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload listing photo")

		return res, fmt.Errorf("failed to upload listing photo: %w", err)
	}

	listing.Photos = append(listing.Photos, url)
	update := dto.UpdatePhotosRequest{Photos: listing.Photos}

	if err = s.repo.Update(ctx, shared.TransformFields(update, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save listing photo")

		go func() {
			if err := s.s3.Delete(context.WithoutCancel(ctx), key); err != nil {
				log.Error().Err(err).Str("key", key).Msg("failed to delete orphan listing photo")
			}
		}()

		return res, fmt.Errorf("failed to save listing photo: %w", err)
	}

	s.invalidate(ctx, id)

	res.FromModel(listing)

	return res, nil
}

func (s *serviceImpl) priceBounds() (float64, float64) {
	priceMin, priceMax := s.cfg.App.Search.PriceMin, s.cfg.App.Search.PriceMax
	if priceMax <= priceMin {
		return search.DefaultPriceMin, search.DefaultPriceMax
	}

	return priceMin, priceMax
}

func (s *serviceImpl) attachReservations(ctx context.Context, listings []model.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	ids := make([]string, len(listings))
	for i, listing := range listings {
		ids[i] = listing.ID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: reservationModel.FieldListingID, Operator: gDto.FilterOperatorIn, Value: ids, Table: reservationModel.TableName},
		},
	}

	reservations, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for search")

		return fmt.Errorf("failed to get reservations for search: %w", err)
	}

	byListing := make(map[string][]reservationModel.Reservation, len(listings))
	for _, r := range reservations {
		byListing[r.ListingID] = append(byListing[r.ListingID], r)
	}

	for i := range listings {
		listings[i].Reservations = byListing[listings[i].ID]
	}

	return nil
}

func (s *serviceImpl) ownedWithStatus(ctx context.Context, req gDto.QueryParams, statuses ...model.Status) (dto.GetListingsResponse, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHostID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: values, Table: model.TableName},
		},
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetListingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count listings")

		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	listings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	res.FromModels(listings, total, req.Limit)

	return res, nil
}

// owned loads a listing and checks the caller hosts it.
func (s *serviceImpl) owned(ctx context.Context, id string) (model.Listing, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return listing, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if listing.HostID != user {
		return listing, failure.ResourceRestrictedError
	}

	return listing, nil
}

func (s *serviceImpl) changeStatus(ctx context.Context, id string, status model.Status) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	update := dto.UpdateStatusRequest{Status: status}

	if err := s.repo.Update(ctx, shared.TransformFields(update, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("failed to update listing status")

		return fmt.Errorf("failed to update listing status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetListing, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete listing cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllListing)
		shared.InvalidateCaches(c, s.cache, cacheCountListing)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllListing)
		shared.InvalidateCaches(c, s.cache, cacheCountListing)
	}()
}

func filterGroups(filter gDto.FilterGroup) []any {
	if len(filter.Filters) == 0 {
		return nil
	}

	return []any{filter}
}
