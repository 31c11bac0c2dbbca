package runtime

import "errors"

var (
	// ErrOrderAlreadyExists is returned when an order is submitted twice.
	ErrOrderAlreadyExists = errors.New("order already exists")

	// ErrOrderNotFound is returned when a command targets an order that was
	// never submitted.
	ErrOrderNotFound = errors.New("order doesn't exist")

	// ErrNoAllocations is returned when a pack or tracking command arrives
	// before the order has been allocated.
	ErrNoAllocations = errors.New("order has no allocations")

	// ErrAllocationNotFound is returned when the named allocation does not
	// exist on the order.
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrInconsistentStatus is returned when a tracking update is not a
	// strictly forward move from a packed allocation.
	ErrInconsistentStatus = errors.New("inconsistent status")

	// ErrBookingCapExceeded is returned when the order already has the
	// maximum number of booking calls in flight. Callers should retry later.
	ErrBookingCapExceeded = errors.New("too many booking requests in flight")

	// ErrUnavailable is returned when the order did not answer within the
	// ask deadline, for example while it is restarting after a persistence
	// failure. Distinct from validation and state-conflict errors.
	ErrUnavailable = errors.New("order is unavailable")
)
