package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher notifies external consumers about journaled order events.
// Publishing is best-effort: failures must never affect command handling.
type EventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
	Close() error
}

// NopEventPublisher discards all events. Used when no broker is configured.
type NopEventPublisher struct{}

// Publish discards the event.
func (NopEventPublisher) Publish(_ context.Context, _ order.Event) error {
	return nil
}

// Close is a no-op.
func (NopEventPublisher) Close() error {
	return nil
}
