package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"staybook/config"
	"staybook/infras/kafka"
	kafkaMocks "staybook/infras/kafka/mocks"
	otelMocks "staybook/infras/otel/mocks"
	metricMocks "staybook/internal/domains/metric/service/mocks"
	"staybook/internal/domains/reservation/event"
	reservationMocks "staybook/internal/domains/reservation/service/mocks"
	"staybook/transport/worker"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	worker       *worker.Worker
	kafka        *kafkaMocks.MockClient
	reservations *reservationMocks.MockReservation
	metrics      *metricMocks.MockMetric
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "staybook-worker"
	cfg.Kafka.Topics.Reservation = "reservation.events"
	cfg.Worker.SweepIntervalSeconds = 3600

	f := fixture{
		kafka:        kafkaMocks.NewMockClient(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		metrics:      metricMocks.NewMockMetric(ctrl),
	}
	f.worker = worker.New(cfg, f.kafka, f.reservations, f.metrics, otelMocks.NewOtel())

	return f
}

func message(t *testing.T, value any) kafkaGo.Message {
	t.Helper()

	raw, err := json.Marshal(value)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte("listing-1"), Value: raw}
}

func TestHandleEvent(t *testing.T) {
	t.Run("invalidates the listing metrics", func(t *testing.T) {
		f := newFixture(t)

		f.metrics.EXPECT().Invalidate(gomock.Any(), "listing-1")

		err := f.worker.HandleEvent(context.Background(), message(t, event.Event{
			Type:      event.TypeConfirmed,
			ListingID: "listing-1",
		}))

		assert.NoError(t, err)
	})

	t.Run("skips events without a listing", func(t *testing.T) {
		f := newFixture(t)

		err := f.worker.HandleEvent(context.Background(), message(t, event.Event{Type: event.TypeCreated}))

		assert.NoError(t, err)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		f := newFixture(t)

		err := f.worker.HandleEvent(context.Background(), kafkaGo.Message{Value: []byte("{")})

		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	t.Run("sweeps on start and stops with the context", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f.kafka.EXPECT().
			Consume(gomock.Any(), "staybook-worker", "reservation.events", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ string, _ kafka.Handler) error {
				<-ctx.Done()

				return nil
			})
		f.reservations.EXPECT().CompletePast(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
			cancel()

			return 2, nil
		})

		assert.NoError(t, f.worker.Run(ctx))
	})

	t.Run("keeps running when the sweep fails", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f.kafka.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ string, _ kafka.Handler) error {
				<-ctx.Done()

				return nil
			})
		f.reservations.EXPECT().CompletePast(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
			cancel()

			return 0, errors.New("db down")
		})

		assert.NoError(t, f.worker.Run(ctx))
	})

	t.Run("returns consumer errors", func(t *testing.T) {
		f := newFixture(t)

		f.kafka.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("topic name cannot be empty"))
		f.reservations.EXPECT().CompletePast(gomock.Any()).Return(0, nil).AnyTimes()

		assert.Error(t, f.worker.Run(context.Background()))
	})
}
