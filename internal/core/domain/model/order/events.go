package order

import "time"

// Event is a persisted state change of an order. It is a closed union:
// OrderReceived, OrderAllocationsReceived, OrderAllocationPacked and
// TrackingUpdated are the only implementations. Replaying a journal of events
// through Apply reconstructs the order's State.
type Event interface {
	// OrderID returns the identifier of the order the event belongs to.
	OrderID() string

	isEvent()
}

// OrderReceived records a newly received order with its items and customer.
type OrderReceived struct {
	orderID  string
	items    map[string]OrderItem
	customer Customer
}

// NewOrderReceived creates an OrderReceived event.
func NewOrderReceived(orderID string, items map[string]OrderItem, customer Customer) OrderReceived {
	copied := make(map[string]OrderItem, len(items))
	for id, item := range items {
		copied[id] = item
	}
	return OrderReceived{orderID: orderID, items: copied, customer: customer}
}

func (e OrderReceived) isEvent() {}

// OrderID returns the order identifier.
func (e OrderReceived) OrderID() string {
	return e.orderID
}

// Items returns a copy of the received items indexed by item identifier.
func (e OrderReceived) Items() map[string]OrderItem {
	items := make(map[string]OrderItem, len(e.items))
	for id, item := range e.items {
		items[id] = item
	}
	return items
}

// Customer returns the order's customer.
func (e OrderReceived) Customer() Customer {
	return e.customer
}

// OrderAllocationsReceived records the allocations computed for an order.
type OrderAllocationsReceived struct {
	orderID     string
	allocations map[string]Allocation
}

// NewOrderAllocationsReceived creates an OrderAllocationsReceived event.
func NewOrderAllocationsReceived(orderID string, allocations map[string]Allocation) OrderAllocationsReceived {
	copied := make(map[string]Allocation, len(allocations))
	for id, allocation := range allocations {
		copied[id] = allocation
	}
	return OrderAllocationsReceived{orderID: orderID, allocations: copied}
}

func (e OrderAllocationsReceived) isEvent() {}

// OrderID returns the order identifier.
func (e OrderAllocationsReceived) OrderID() string {
	return e.orderID
}

// Allocations returns a copy of the allocations indexed by allocation identifier.
func (e OrderAllocationsReceived) Allocations() map[string]Allocation {
	allocations := make(map[string]Allocation, len(e.allocations))
	for id, allocation := range e.allocations {
		allocations[id] = allocation
	}
	return allocations
}

// OrderAllocationPacked records a successful booking: the named allocation's
// items are packed and delivery is booked under the tracking identifier.
type OrderAllocationPacked struct {
	orderID      string
	allocationID string
	trackingID   string
	at           time.Time
}

// NewOrderAllocationPacked creates an OrderAllocationPacked event.
func NewOrderAllocationPacked(orderID, allocationID, trackingID string, at time.Time) OrderAllocationPacked {
	return OrderAllocationPacked{orderID: orderID, allocationID: allocationID, trackingID: trackingID, at: at}
}

func (e OrderAllocationPacked) isEvent() {}

// OrderID returns the order identifier.
func (e OrderAllocationPacked) OrderID() string {
	return e.orderID
}

// AllocationID returns the packed allocation's identifier.
func (e OrderAllocationPacked) AllocationID() string {
	return e.allocationID
}

// TrackingID returns the tracking identifier assigned by the courier.
func (e OrderAllocationPacked) TrackingID() string {
	return e.trackingID
}

// At returns the packing timestamp.
func (e OrderAllocationPacked) At() time.Time {
	return e.at
}

// TrackingUpdated records a delivery status advance for an allocation.
type TrackingUpdated struct {
	orderID      string
	allocationID string
	status       Status
	at           time.Time
}

// NewTrackingUpdated creates a TrackingUpdated event.
func NewTrackingUpdated(orderID, allocationID string, status Status, at time.Time) TrackingUpdated {
	return TrackingUpdated{orderID: orderID, allocationID: allocationID, status: status, at: at}
}

func (e TrackingUpdated) isEvent() {}

// OrderID returns the order identifier.
func (e TrackingUpdated) OrderID() string {
	return e.orderID
}

// AllocationID returns the updated allocation's identifier.
func (e TrackingUpdated) AllocationID() string {
	return e.allocationID
}

// Status returns the recorded status.
func (e TrackingUpdated) Status() Status {
	return e.status
}

// At returns the update timestamp.
func (e TrackingUpdated) At() time.Time {
	return e.at
}

// Apply is the pure transition function (state, event) -> state.
//
// Transitions:
//   - OrderReceived:            Blank -> New
//   - OrderAllocationsReceived: New -> Allocated (allocations installed as-is)
//   - OrderAllocationPacked:    within Allocated, the named allocation gains a
//     PACKED status entry and its tracking identifier; others are unchanged
//   - TrackingUpdated:          within Allocated, the named allocation gains a
//     status entry
//
// Events that do not match the current state leave it unchanged; command
// validation guarantees such pairs are never journaled.
func Apply(state State, event Event) State {
	switch s := state.(type) {
	case BlankState:
		if e, ok := event.(OrderReceived); ok {
			return NewOrderState{items: e.Items(), customer: e.Customer()}
		}
	case NewOrderState:
		if e, ok := event.(OrderAllocationsReceived); ok {
			return AllocatedOrderState{allocations: e.Allocations(), customer: s.customer}
		}
	case AllocatedOrderState:
		switch e := event.(type) {
		case OrderAllocationPacked:
			allocations := s.Allocations()
			if allocation, ok := allocations[e.allocationID]; ok {
				allocations[e.allocationID] = allocation.WithTracking(e.trackingID, e.at)
			}
			return AllocatedOrderState{allocations: allocations, customer: s.customer}
		case TrackingUpdated:
			allocations := s.Allocations()
			if allocation, ok := allocations[e.allocationID]; ok {
				allocations[e.allocationID] = allocation.WithStatus(e.at, e.status)
			}
			return AllocatedOrderState{allocations: allocations, customer: s.customer}
		}
	}
	return state
}
