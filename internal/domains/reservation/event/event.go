package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/config"
	"staybook/infras/kafka"
	"staybook/infras/otel"
	"staybook/internal/domains/reservation/model"
	"staybook/shared/constant"
	"staybook/shared/daterange"
	"staybook/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	TypeCreated   Type = "reservation.created"
	TypeUpdated   Type = "reservation.updated"
	TypeCancelled Type = "reservation.cancelled"
	TypeConfirmed Type = "reservation.confirmed"
	TypeCompleted Type = "reservation.completed"
)

type Event struct {
	Type          Type      `json:"type"`
	ReservationID string    `json:"reservation_id"`
	ListingID     string    `json:"listing_id"`
	GuestID       string    `json:"guest_id"`
	Status        string    `json:"status"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func New(t Type, reservation model.Reservation) Event {
	return Event{
		Type:          t,
		ReservationID: reservation.ID,
		ListingID:     reservation.ListingID,
		GuestID:       reservation.GuestID,
		Status:        string(reservation.Status),
		CheckIn:       reservation.CheckIn.Format(daterange.LayoutDate),
		CheckOut:      reservation.CheckOut.Format(daterange.LayoutDate),
		OccurredAt:    timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topics.Reservation,
		otel:   otel,
	}
}

// Publish sends the events keyed by listing so a listing's events stay ordered.
func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, e := range events {
		messages[i] = kafka.Message{Key: e.ListingID, Value: e}
	}

	scope.SetAttributes(map[string]any{
		"event.topic": p.topic,
		"event.count": len(events),
	})

	if err = p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("failed to publish reservation events")

		return fmt.Errorf("failed to publish reservation events: %w", err)
	}

	return nil
}
