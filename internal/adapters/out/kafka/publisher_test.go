package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/order"
)

type recordingWriter struct {
	messages []segmentio.Message
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...segmentio.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher(t *testing.T) {
	at := time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC)

	t.Run("keys messages by order identifier", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := NewPublisherWithWriter(writer)

		err := publisher.Publish(context.Background(), order.NewOrderAllocationPacked("order-1", "1", "trk-9", at))
		require.NoError(t, err)

		require.Len(t, writer.messages, 1)
		assert.Equal(t, "order-1", string(writer.messages[0].Key))

		var payload map[string]any
		require.NoError(t, json.Unmarshal(writer.messages[0].Value, &payload))
		assert.Equal(t, "allocationPacked", payload["type"])
		assert.Equal(t, "trk-9", payload["trackingId"])
	})

	t.Run("publishes tracking updates with the status name", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := NewPublisherWithWriter(writer)

		err := publisher.Publish(context.Background(), order.NewTrackingUpdated("order-1", "1", order.Delivered, at))
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(writer.messages[0].Value, &payload))
		assert.Equal(t, "trackingUpdated", payload["type"])
		assert.Equal(t, "DELIVERED", payload["status"])
	})

	t.Run("closes the underlying writer", func(t *testing.T) {
		writer := &recordingWriter{}
		require.NoError(t, NewPublisherWithWriter(writer).Close())
		assert.True(t, writer.closed)
	})
}
