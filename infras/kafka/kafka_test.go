package kafka_test

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/infras/kafka"
)

type payload struct {
	ListingID string `json:"listing_id"`
	Count     int    `json:"count"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "L1", Value: payload{ListingID: "L1", Count: 2}}

	encoded, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("L1"), encoded.Key)
	assert.JSONEq(t, `{"listing_id":"L1","count":2}`, string(encoded.Value))

	decoded, err := kafka.Decode[payload](encoded)
	require.NoError(t, err)
	assert.Equal(t, payload{ListingID: "L1", Count: 2}, decoded)
}

func TestMessage_Errors(t *testing.T) {
	msg := kafka.Message{Key: "L1", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	require.Error(t, err)

	_, err = kafka.Decode[payload](kafkaGo.Message{Value: []byte("{")})
	assert.ErrorContains(t, err, "unmarshal")
}
