package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"staybook/config"
	"staybook/infras/kafka"
	"staybook/infras/otel"
	metricService "staybook/internal/domains/metric/service"
	"staybook/internal/domains/reservation/event"
	reservationService "staybook/internal/domains/reservation/service"
	"staybook/shared/constant"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

const minSweepInterval = time.Minute

// Worker runs the background jobs of the service: it drops cached metrics
// when reservation events arrive and completes reservations past check-out.
type Worker struct {
	cfg          *config.Config
	kafka        kafka.Client
	reservations reservationService.Reservation
	metrics      metricService.Metric
	otel         otel.Otel
}

func New(
	cfg *config.Config,
	kafka kafka.Client,
	reservations reservationService.Reservation,
	metrics metricService.Metric,
	otel otel.Otel,
) *Worker {
	return &Worker{
		cfg:          cfg,
		kafka:        kafka,
		reservations: reservations,
		metrics:      metrics,
		otel:         otel,
	}
}

// Serve blocks until SIGINT or SIGTERM.
func (w *Worker) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("topic", w.cfg.Kafka.Topics.Reservation).Msg("Starting up worker.")

	if err := w.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
	}

	if err := w.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	if err := w.otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Worker shut down.")
}

// Run consumes reservation events and sweeps on a ticker until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.Reservation, w.HandleEvent) //nolint:wrapcheck
	})

	group.Go(func() error {
		w.sweep(ctx)

		return nil
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	return nil
}

// HandleEvent invalidates the cached metrics of the listing an event touches.
func (w *Worker) HandleEvent(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".HandleEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	e, err := kafka.Decode[event.Event](message)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if e.ListingID == "" {
		log.Warn().Str("type", string(e.Type)).Msg("reservation event without listing")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"event.type":       string(e.Type),
		"event.listing_id": e.ListingID,
	})

	w.metrics.Invalidate(ctx, e.ListingID)

	return nil
}

func (w *Worker) sweep(ctx context.Context) {
	interval := time.Duration(w.cfg.Worker.SweepIntervalSeconds) * time.Second
	if interval < minSweepInterval {
		interval = minSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.completePast(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.completePast(ctx)
		}
	}
}

func (w *Worker) completePast(ctx context.Context) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".CompletePast")
	defer scope.End()

	completed, err := w.reservations.CompletePast(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete past reservations")

		return
	}

	log.Info().Int("completed", completed).Msg("completed past reservations")
}
