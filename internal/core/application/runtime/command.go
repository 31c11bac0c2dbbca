package runtime

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Commands delivered through an entity's mailbox. Each command that expects
// an answer carries a buffered reply channel so the entity never blocks on a
// caller that gave up.

type receiveOrder struct {
	items    map[string]order.OrderItem
	customer order.Customer
	reply    chan error
}

// receiveAllocations is fire-and-forget: it is posted by the allocator worker
// and carries no reply destination.
type receiveAllocations struct {
	allocations map[string]order.Allocation
}

type packAllocation struct {
	allocationID string
	reply        chan packResult
}

type packResult struct {
	trackingID string
	err        error
}

// bookingCompleted folds an asynchronous booking result back into the
// entity's serialized command stream, carrying the original caller's reply
// destination forward.
type bookingCompleted struct {
	allocationID string
	trackingID   string
	err          error
	reply        chan packResult
}

type updateTracking struct {
	allocationID string
	status       order.Status
	at           time.Time
	reply        chan error
}

type fetchDetails struct {
	reply chan order.Details
}
