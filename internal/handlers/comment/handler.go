package comment

import (
	"net/http"
	"staybook/infras/otel"
	"staybook/internal/domains/comment/model/dto"
	"staybook/internal/domains/comment/service"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/validator"
	"staybook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Comment
	otel    otel.Otel
}

func New(service service.Comment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/comments", func(routerGroup chi.Router) {
		routerGroup.Post("/{id}/reply", handler.ReplyComment)
	})
}

func (handler *Handler) ListingRouter(router chi.Router) {
	router.Get("/{id}/comments", handler.GetListingComments)
}

func (handler *Handler) ReservationRouter(router chi.Router) {
	router.Post("/{id}/comments", handler.CreateComment)
}

// CreateComment rates a completed stay.
// @Summary Comment on a reservation
// @Description Only the guest of a completed reservation may comment, once.
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.CreateCommentRequest true "Create Comment Request"
// @Success 201 {object} response.Data[dto.CommentResponse] "Comment created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/comments [post]
// @Security BearerAuth
func (handler *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateComment")
	defer scope.End()

	req := dto.CreateCommentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create comment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// ReplyComment answers a comment as the listing host.
// @Summary Reply to a comment
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body dto.ReplyCommentRequest true "Reply Request"
// @Success 200 {object} response.Data[dto.CommentResponse] "Comment with reply"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/comments/{id}/reply [post]
// @Security BearerAuth
func (handler *Handler) ReplyComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyComment")
	defer scope.End()

	req := dto.ReplyCommentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reply(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply comment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetListingComments lists a listing's comments with the average rating.
// @Summary Get listing comments
// @Tags Comment
// @Produce json
// @Param id path string true "Listing ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetCommentsResponse] "Comments"
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id}/comments [get]
func (handler *Handler) GetListingComments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListingComments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetByListing(ctx, queryParams, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get comments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
