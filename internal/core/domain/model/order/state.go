package order

import (
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Synthetic allocation shown for orders that are received but not yet
// allocated, so callers always see a uniform Details shape.
const (
	NotAllocatedKey   = "Not Allocated"
	noCourier         = "No Courier"
	notAvailableField = "N/A"
)

// State is the tagged state of an order. It is a closed union: BlankState,
// NewOrderState and AllocatedOrderState are the only implementations.
type State interface {
	// Details renders the state as a uniform snapshot for callers.
	Details() Details

	isState()
}

// Details is a read-only snapshot of an order handed to callers. An empty
// allocation set signals that the order does not exist.
type Details struct {
	allocations map[string]Allocation
	customer    *Customer
}

// NewDetails creates a details snapshot from allocations and an optional customer.
func NewDetails(allocations map[string]Allocation, customer *Customer) Details {
	copied := make(map[string]Allocation, len(allocations))
	for id, allocation := range allocations {
		copied[id] = allocation
	}
	return Details{allocations: copied, customer: customer}
}

// Allocations returns a copy of the snapshot's allocations indexed by
// allocation identifier.
func (d Details) Allocations() map[string]Allocation {
	allocations := make(map[string]Allocation, len(d.allocations))
	for id, allocation := range d.allocations {
		allocations[id] = allocation
	}
	return allocations
}

// Customer returns the order's customer, or nil when the order is unknown.
func (d Details) Customer() *Customer {
	return d.customer
}

// HasAllocation reports whether an allocation exists for the identifier.
func (d Details) HasAllocation(id string) bool {
	_, ok := d.allocations[id]
	return ok
}

// Allocation returns the allocation for the identifier.
func (d Details) Allocation(id string) (Allocation, bool) {
	allocation, ok := d.allocations[id]
	return allocation, ok
}

// BlankState is the initial state before any event: no order received yet.
type BlankState struct{}

func (BlankState) isState() {}

// Details returns an empty snapshot with no customer.
func (BlankState) Details() Details {
	return Details{allocations: map[string]Allocation{}}
}

// NewOrderState holds a received order whose allocations have not been
// computed yet.
type NewOrderState struct {
	items    map[string]OrderItem
	customer Customer
}

func (NewOrderState) isState() {}

// Items returns a copy of the order's items indexed by item identifier.
func (s NewOrderState) Items() map[string]OrderItem {
	items := make(map[string]OrderItem, len(s.items))
	for id, item := range s.items {
		items[id] = item
	}
	return items
}

// Customer returns the order's customer.
func (s NewOrderState) Customer() Customer {
	return s.customer
}

// Details wraps the items in a single synthetic "Not Allocated" allocation
// with status CREATED and no courier, since real allocations don't exist yet.
func (s NewOrderState) Details() Details {
	address := Address{
		street:  notAvailableField,
		city:    notAvailableField,
		country: notAvailableField,
		guard:   guard.NewConstructorGuard(),
	}
	pending := Allocation{
		id:       notAvailableField,
		name:     notAvailableField,
		address:  address,
		items:    s.Items(),
		courier:  noCourier,
		statuses: []StatusEntry{NewStatusEntry(time.Now(), Created)},
		guard:    guard.NewConstructorGuard(),
	}
	customer := s.customer
	return Details{
		allocations: map[string]Allocation{NotAllocatedKey: pending},
		customer:    &customer,
	}
}

// RestoreNewOrderState rehydrates a received-order state from persistence.
func RestoreNewOrderState(items map[string]OrderItem, customer Customer) (NewOrderState, error) {
	if len(items) == 0 {
		return NewOrderState{}, errs.NewValueIsRequiredError("items")
	}
	for id, item := range items {
		if err := item.Validate(); err != nil {
			return NewOrderState{}, err
		}
		if id != item.ID() {
			return NewOrderState{}, errs.NewValueIsInvalidError("items")
		}
	}
	if err := customer.Validate(); err != nil {
		return NewOrderState{}, err
	}

	copied := make(map[string]OrderItem, len(items))
	for id, item := range items {
		copied[id] = item
	}
	return NewOrderState{items: copied, customer: customer}, nil
}

// AllocatedOrderState holds an allocated order. It remains the state for the
// rest of the order's life while allocation statuses advance.
type AllocatedOrderState struct {
	allocations map[string]Allocation
	customer    Customer
}

func (AllocatedOrderState) isState() {}

// Allocations returns a copy of the order's allocations indexed by
// allocation identifier.
func (s AllocatedOrderState) Allocations() map[string]Allocation {
	allocations := make(map[string]Allocation, len(s.allocations))
	for id, allocation := range s.allocations {
		allocations[id] = allocation
	}
	return allocations
}

// Customer returns the order's customer.
func (s AllocatedOrderState) Customer() Customer {
	return s.customer
}

// HasAllocation reports whether an allocation exists for the identifier.
func (s AllocatedOrderState) HasAllocation(id string) bool {
	_, ok := s.allocations[id]
	return ok
}

// Allocation returns the allocation for the identifier.
func (s AllocatedOrderState) Allocation(id string) (Allocation, bool) {
	allocation, ok := s.allocations[id]
	return allocation, ok
}

// LatestAllocationStatus returns the latest status of the named allocation,
// or NA when the allocation does not exist.
func (s AllocatedOrderState) LatestAllocationStatus(id string) Status {
	allocation, ok := s.allocations[id]
	if !ok {
		return NA
	}
	return allocation.LatestStatus()
}

// Details returns the real allocations and customer.
func (s AllocatedOrderState) Details() Details {
	customer := s.customer
	return Details{allocations: s.Allocations(), customer: &customer}
}

// RestoreAllocatedOrderState rehydrates an allocated-order state from
// persistence.
func RestoreAllocatedOrderState(allocations map[string]Allocation, customer Customer) (AllocatedOrderState, error) {
	if len(allocations) == 0 {
		return AllocatedOrderState{}, errs.NewValueIsRequiredError("allocations")
	}
	for id, allocation := range allocations {
		if err := allocation.Validate(); err != nil {
			return AllocatedOrderState{}, err
		}
		if id != allocation.ID() {
			return AllocatedOrderState{}, errs.NewValueIsInvalidError("allocations")
		}
	}
	if err := customer.Validate(); err != nil {
		return AllocatedOrderState{}, err
	}

	copied := make(map[string]Allocation, len(allocations))
	for id, allocation := range allocations {
		copied[id] = allocation
	}
	return AllocatedOrderState{allocations: copied, customer: customer}, nil
}
