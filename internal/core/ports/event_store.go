// Package ports defines the interfaces the core requires from its
// collaborators: the event journal, the courier booking capability and its
// transport, and the event publisher.
package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
)

// ErrSequenceConflict is returned by Append when the expected sequence number
// does not match the journal. Under the single-writer guarantee this signals
// a duplicate entity instance and is fatal to the caller.
var ErrSequenceConflict = errors.New("event sequence conflict")

// Snapshot is a full-state checkpoint of an order taken to bound recovery
// replay cost. Seq is the sequence number of the last event folded into State.
type Snapshot struct {
	Seq   uint64
	State order.State
}

// EventStore is the append-only per-order event journal plus its snapshot
// store. Sequence numbers are 1-based and contiguous per order.
type EventStore interface {
	// Append journals events for an order. fromSeq is the sequence number the
	// first event must receive; ErrSequenceConflict is returned when the
	// journal has already advanced past it.
	Append(ctx context.Context, orderID string, fromSeq uint64, events []order.Event) error

	// Load returns the order's events with sequence numbers greater than
	// afterSeq, in journal order. A missing order yields an empty slice.
	Load(ctx context.Context, orderID string, afterSeq uint64) ([]order.Event, error)

	// SaveSnapshot stores a full-state checkpoint, replacing any previous one.
	SaveSnapshot(ctx context.Context, orderID string, snapshot Snapshot) error

	// LoadSnapshot returns the latest checkpoint for the order. The boolean
	// reports whether one exists.
	LoadSnapshot(ctx context.Context, orderID string) (Snapshot, bool, error)
}
