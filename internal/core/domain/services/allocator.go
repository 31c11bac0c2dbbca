package services

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAllocationSiteIsNotConstructed is returned when an AllocationSite was
// not created through the NewAllocationSite constructor.
var ErrAllocationSiteIsNotConstructed = errors.New(
	"AllocationSite must be created via NewAllocationSite constructor",
)

// ErrNoAllocationSites is returned when an Allocator is constructed without
// any site templates.
var ErrNoAllocationSites = errors.New("at least one allocation site is required")

// AllocationSite is a pickup location template: where a group of items is
// collected and which courier delivers it. Sites are read-only configuration
// injected into the Allocator.
type AllocationSite struct {
	name    string
	address order.Address
	courier string

	guard guard.ConstructorGuard
}

// NewAllocationSite creates a validated allocation site template.
func NewAllocationSite(name, courier string, address order.Address) (AllocationSite, error) {
	if name == "" {
		return AllocationSite{}, errs.NewValueIsRequiredError("site name")
	}
	if courier == "" {
		return AllocationSite{}, errs.NewValueIsRequiredError("site courier")
	}
	if err := address.Validate(); err != nil {
		return AllocationSite{}, err
	}

	return AllocationSite{
		name:    name,
		address: address,
		courier: courier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the site was created through NewAllocationSite.
func (s AllocationSite) Validate() error {
	return s.guard.Validate(ErrAllocationSiteIsNotConstructed)
}

// Name returns the pickup location name.
func (s AllocationSite) Name() string {
	return s.name
}

// Address returns the pickup location address.
func (s AllocationSite) Address() order.Address {
	return s.address
}

// Courier returns the courier identifier booked for deliveries from this site.
func (s AllocationSite) Courier() string {
	return s.courier
}

// DefaultAllocationSites returns the built-in pair of site templates used
// when no explicit configuration is provided.
func DefaultAllocationSites() []AllocationSite {
	tlvAddress, err := order.NewAddress("Namir 15", "Tel Aviv", "Israel", 12345)
	if err != nil {
		panic(err)
	}
	outletAddress, err := order.NewAddress("Bialik 89", "Ramat Gan", "Israel", 64722)
	if err != nil {
		panic(err)
	}

	tlv, err := NewAllocationSite("TLV Warehouse", "FedEx", tlvAddress)
	if err != nil {
		panic(err)
	}
	outlet, err := NewAllocationSite("Outlet Store", "DeliverIt", outletAddress)
	if err != nil {
		panic(err)
	}

	return []AllocationSite{tlv, outlet}
}

// Allocator decides how an order's items are split across allocation groups.
//
// NOTE: this is a simulated placement decision. A real implementation would
// consult warehouse inventory and the customer's address to pick sites and
// couriers; here, orders with more than one item are split into two groups
// with probability 0.5, and site templates are chosen by allocation slot.
type Allocator struct {
	sites  []AllocationSite
	random func() float64
}

// NewAllocator creates an allocator over the given site templates.
func NewAllocator(sites []AllocationSite) (Allocator, error) {
	return NewAllocatorWithRandom(sites, rand.Float64)
}

// NewAllocatorWithRandom creates an allocator with an injected randomness
// source, so the split decision can be pinned in tests.
func NewAllocatorWithRandom(sites []AllocationSite, random func() float64) (Allocator, error) {
	if len(sites) == 0 {
		return Allocator{}, ErrNoAllocationSites
	}
	for _, site := range sites {
		if err := site.Validate(); err != nil {
			return Allocator{}, err
		}
	}

	return Allocator{sites: sites, random: random}, nil
}

// Allocate produces one or two allocation groups covering exactly the given
// items, each pre-seeded with status ALLOCATED at the current time. Orders
// with a single item always produce a single group.
func (a Allocator) Allocate(
	items map[string]order.OrderItem,
	customer order.Customer,
) (map[string]order.Allocation, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	allocations := make(map[string]order.Allocation)

	if len(items) <= 1 || a.random() < 0.5 {
		one, err := a.buildAllocation(1, items)
		if err != nil {
			return nil, err
		}
		allocations[one.ID()] = one
		return allocations, nil
	}

	// split an arbitrary item into its own group
	var firstID string
	for id := range items {
		firstID = id
		break
	}
	rest := make(map[string]order.OrderItem, len(items)-1)
	for id, item := range items {
		if id != firstID {
			rest[id] = item
		}
	}

	one, err := a.buildAllocation(1, map[string]order.OrderItem{firstID: items[firstID]})
	if err != nil {
		return nil, err
	}
	two, err := a.buildAllocation(2, rest)
	if err != nil {
		return nil, err
	}

	allocations[one.ID()] = one
	allocations[two.ID()] = two
	return allocations, nil
}

func (a Allocator) buildAllocation(slot int, items map[string]order.OrderItem) (order.Allocation, error) {
	site := a.sites[slot%len(a.sites)]

	return order.NewAllocation(
		strconv.Itoa(slot),
		site.Name(),
		site.Address(),
		items,
		site.Courier(),
		"",
		[]order.StatusEntry{order.NewStatusEntry(time.Now(), order.Allocated)},
	)
}
