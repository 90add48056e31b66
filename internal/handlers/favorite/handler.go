package favorite

import (
	"net/http"
	"staybook/infras/otel"
	"staybook/internal/domains/favorite/model/dto"
	"staybook/internal/domains/favorite/service"
	"staybook/shared/constant"
	"staybook/shared/validator"
	"staybook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Favorite
	otel    otel.Otel
}

func New(service service.Favorite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/favorites", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFavorites)
		routerGroup.Post("/", handler.AddFavorite)
		routerGroup.Delete("/{id}", handler.RemoveFavorite)
	})
}

// GetFavorites lists the caller's favorite listings that are still active.
// @Summary Get favorites
// @Tags Favorite
// @Produce json
// @Success 200 {object} response.Data[dto.GetFavoritesResponse] "Favorite listings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddFavorite marks a listing as favorite.
// @Summary Add a favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body dto.AddFavoriteRequest true "Add Favorite Request"
// @Success 201 {object} response.Message "Favorite added"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favorites [post]
// @Security BearerAuth
func (handler *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFavorite")
	defer scope.End()

	req := dto.AddFavoriteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Add(ctx, req.ListingID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add favorite")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Favorite added")
}

// RemoveFavorite unmarks a listing.
// @Summary Remove a favorite
// @Tags Favorite
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message "Favorite removed"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favorites/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveFavorite")
	defer scope.End()

	if err := handler.service.Remove(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove favorite")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Favorite removed")
}
