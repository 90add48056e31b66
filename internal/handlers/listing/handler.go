package listing

import (
	"net/http"
	"staybook/infras/otel"
	"staybook/internal/domains/listing/model"
	"staybook/internal/domains/listing/model/dto"
	"staybook/internal/domains/listing/service"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/validator"
	"staybook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the listing routes on a router already mounted at /listings.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/", handler.CreateListing)
	router.Get("/", handler.GetListings)
	router.Get("/search", handler.SearchListings)
	router.Get("/mine", handler.GetMyListings)
	router.Get("/trash", handler.GetTrash)
	router.Get("/{id}", handler.GetListingByID)
	router.Patch("/{id}", handler.UpdateListing)
	router.Delete("/{id}", handler.DeleteListing)
	router.Post("/{id}/restore", handler.RestoreListing)
	router.Post("/{id}/photos", handler.UploadPhoto)
}

// CreateListing handles the creation of a new listing.
// @Summary Create a listing
// @Description Publish a new listing owned by the calling host.
// @Tags Listing
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Create Listing Request"
// @Success 201 {object} response.Data[dto.ListingResponse] "Listing created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [post]
// @Security BearerAuth
func (handler *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateListing")
	defer scope.End()

	req := dto.CreateListingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create listing")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetListings retrieves active listings.
// @Summary Get listings
// @Description Retrieve active listings with pagination and optional city/country filters.
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param city query string false "Filter by city"
// @Param country query string false "Filter by country"
// @Success 200 {object} response.Data[dto.GetListingsResponse] "List of listings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [get]
func (handler *Handler) GetListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldCity, model.FieldCountry} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	listings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, listings)
}

// SearchListings filters active listings by city, price, amenities, availability and favorites.
// @Summary Search listings
// @Description City matches ignore case and accents. Dates are YYYY-MM-DD; a listing is excluded when any reservation touches the requested stay.
// @Tags Listing
// @Produce json
// @Param city query string false "City fragment"
// @Param price_min query number false "Minimum nightly price"
// @Param price_max query number false "Maximum nightly price"
// @Param check_in query string false "Check-in date"
// @Param check_out query string false "Check-out date"
// @Param amenities query string false "Comma separated amenities, all required"
// @Param favorites query boolean false "Only the caller's favorites"
// @Success 200 {object} response.Data[dto.SearchResponse] "Matching listings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/search [get]
func (handler *Handler) SearchListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchListings")
	defer scope.End()

	req := dto.SearchRequest{}
	req.FromRequest(r)

	res, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyListings retrieves the caller's published and pending listings.
// @Summary Get my listings
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetListingsResponse] "Host listings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyListings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get host listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTrash retrieves the caller's deleted listings.
// @Summary Get trashed listings
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetListingsResponse] "Trashed listings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/trash [get]
// @Security BearerAuth
func (handler *Handler) GetTrash(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTrash")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetTrash(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get trashed listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetListingByID retrieves a listing with its average rating.
// @Summary Get a listing by ID
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Data[dto.ListingResponse] "Listing details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [get]
func (handler *Handler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	listing, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, listing)
}

// UpdateListing partially updates a listing owned by the caller.
// @Summary Update a listing
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Update Listing Request"
// @Success 200 {object} response.Message "Listing updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateListingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update listing")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Listing updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Listing updated successfully")
}

// DeleteListing moves a listing to the trash.
// @Summary Delete a listing
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message "Listing moved to trash"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete listing")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Listing deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Listing moved to trash")
}

// RestoreListing brings a trashed listing back.
// @Summary Restore a listing
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message "Listing restored"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id}/restore [post]
// @Security BearerAuth
func (handler *Handler) RestoreListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Restore(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to restore listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing restored")
}

// UploadPhoto stores a photo and appends it to the listing.
// @Summary Upload a listing photo
// @Tags Listing
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Listing ID"
// @Param photo formData file true "Photo (png, jpg, jpeg, webp; up to 5 MB)"
// @Success 201 {object} response.Data[dto.ListingResponse] "Updated listing"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id}/photos [post]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadPhotoRequest{}

	file, fileHeader, err := r.FormFile(constant.RequestParamPhoto)
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadPhoto(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload listing photo")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
