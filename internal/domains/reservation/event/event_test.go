package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staybook/config"
	"staybook/infras/kafka"
	kafkaMocks "staybook/infras/kafka/mocks"
	otelMocks "staybook/infras/otel/mocks"
	"staybook/internal/domains/reservation/event"
	"staybook/internal/domains/reservation/model"
)

func reservation() model.Reservation {
	return model.Reservation{
		ID:        "r1",
		ListingID: "L1",
		GuestID:   "g1",
		CheckIn:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:    model.StatusPending,
	}
}

func TestNew(t *testing.T) {
	e := event.New(event.TypeCreated, reservation())

	assert.Equal(t, event.TypeCreated, e.Type)
	assert.Equal(t, "r1", e.ReservationID)
	assert.Equal(t, "L1", e.ListingID)
	assert.Equal(t, "PENDING", e.Status)
	assert.Equal(t, "2024-03-10", e.CheckIn)
	assert.Equal(t, "2024-03-15", e.CheckOut)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestPublisher_Publish(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Topics.Reservation = "reservation.events"

	t.Run("keys messages by listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		publisher := event.NewPublisher(client, cfg, otelMocks.NewOtel())

		e := event.New(event.TypeCancelled, reservation())

		client.EXPECT().SendMessages(gomock.Any(), "reservation.events", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "L1", messages[0].Key)

				encoded, err := messages[0].ToKafkaMessage()
				require.NoError(t, err)

				decoded, err := kafka.Decode[event.Event](encoded)
				require.NoError(t, err)
				assert.Equal(t, e.ReservationID, decoded.ReservationID)
				assert.Equal(t, event.TypeCancelled, decoded.Type)

				return nil
			})

		assert.NoError(t, publisher.Publish(context.Background(), e))
	})

	t.Run("nothing to publish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		publisher := event.NewPublisher(client, cfg, otelMocks.NewOtel())

		assert.NoError(t, publisher.Publish(context.Background()))
	})

	t.Run("broker error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		publisher := event.NewPublisher(client, cfg, otelMocks.NewOtel())

		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.Error(t, publisher.Publish(context.Background(), event.New(event.TypeCreated, reservation())))
	})
}
