package metric

import (
	"net/http"
	"staybook/infras/otel"
	"staybook/internal/domains/metric/model/dto"
	"staybook/internal/domains/metric/service"
	"staybook/shared/constant"
	"staybook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Metric
	otel    otel.Otel
}

func New(service service.Metric, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/host/metrics", handler.GetHostMetrics)
}

func (handler *Handler) ListingRouter(router chi.Router) {
	router.Get("/{id}/metrics", handler.GetListingMetrics)
}

func metricRequest(r *http.Request) dto.MetricRequest {
	query := r.URL.Query()

	return dto.MetricRequest{
		From: query.Get(constant.RequestParamFrom),
		To:   query.Get(constant.RequestParamTo),
	}
}

// GetListingMetrics reports reservations, income, rating and occupancy of one listing.
// @Summary Get listing metrics
// @Description Both dates are required (YYYY-MM-DD) and inclusive.
// @Tags Metric
// @Produce json
// @Param id path string true "Listing ID"
// @Param from query string true "Window start"
// @Param to query string true "Window end"
// @Success 200 {object} response.Data[dto.MetricResponse] "Listing metrics"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id}/metrics [get]
// @Security BearerAuth
func (handler *Handler) GetListingMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListingMetrics")
	defer scope.End()

	res, err := handler.service.ForListing(ctx, metricRequest(r), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing metrics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetHostMetrics reports metrics for every listing of the calling host.
// @Summary Get host metrics
// @Tags Metric
// @Produce json
// @Param from query string true "Window start"
// @Param to query string true "Window end"
// @Success 200 {object} response.Data[dto.HostMetricResponse] "Host metrics"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/host/metrics [get]
// @Security BearerAuth
func (handler *Handler) GetHostMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHostMetrics")
	defer scope.End()

	res, err := handler.service.ForHost(ctx, metricRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get host metrics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
