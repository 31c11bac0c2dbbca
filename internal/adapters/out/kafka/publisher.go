// Package kafka publishes order lifecycle events to a Kafka topic for
// external consumers. Publishing is best-effort and never blocks command
// handling on broker failures.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var _ ports.EventPublisher = &Publisher{}

// messageWriter is the slice of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order events to a Kafka topic, keyed by order identifier
// so events of one order stay in partition order.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher against the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// envelope is the wire format of a published order event.
type envelope struct {
	OrderID      string    `json:"orderId"`
	Type         string    `json:"type"`
	AllocationID string    `json:"allocationId,omitempty"`
	TrackingID   string    `json:"trackingId,omitempty"`
	Status       string    `json:"status,omitempty"`
	At           time.Time `json:"at,omitempty"`
}

// Publish sends the event to the topic.
func (p *Publisher) Publish(ctx context.Context, event order.Event) error {
	value, err := json.Marshal(toEnvelope(event))
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID()),
		Value: value,
	})
}

// Close shuts down the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toEnvelope(event order.Event) envelope {
	switch e := event.(type) {
	case order.OrderReceived:
		return envelope{OrderID: e.OrderID(), Type: "orderReceived"}
	case order.OrderAllocationsReceived:
		return envelope{OrderID: e.OrderID(), Type: "orderAllocated"}
	case order.OrderAllocationPacked:
		return envelope{
			OrderID:      e.OrderID(),
			Type:         "allocationPacked",
			AllocationID: e.AllocationID(),
			TrackingID:   e.TrackingID(),
			At:           e.At(),
		}
	case order.TrackingUpdated:
		return envelope{
			OrderID:      e.OrderID(),
			Type:         "trackingUpdated",
			AllocationID: e.AllocationID(),
			Status:       e.Status().String(),
			At:           e.At(),
		}
	default:
		return envelope{OrderID: event.OrderID(), Type: "unknown"}
	}
}
