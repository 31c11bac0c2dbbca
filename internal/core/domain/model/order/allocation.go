package order

import (
	"errors"
	"sort"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAllocationIsNotConstructed is returned when an Allocation instance was
// not created through the NewAllocation constructor.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// StatusEntry is one timestamped entry of an allocation's status history.
type StatusEntry struct {
	at     time.Time
	status Status
}

// NewStatusEntry creates a status history entry.
func NewStatusEntry(at time.Time, status Status) StatusEntry {
	return StatusEntry{at: at, status: status}
}

// At returns the entry's timestamp.
func (e StatusEntry) At() time.Time {
	return e.at
}

// Status returns the entry's status value.
func (e StatusEntry) Status() Status {
	return e.status
}

// Allocation is an immutable subset of an order's items assigned to one
// pickup location and courier, tracked through a time-ordered delivery status
// history. Mutating operations return a new Allocation; the history is
// append-only and always sorted by timestamp. Monotonicity of the recorded
// statuses is enforced by the state machine's transition guards, not here.
type Allocation struct {
	id         string
	name       string
	address    Address
	items      map[string]OrderItem
	courier    string
	trackingID string
	statuses   []StatusEntry

	guard guard.ConstructorGuard
}

// NewAllocation creates a validated allocation. The tracking identifier may
// be empty (not yet booked) and the status history may be empty (latest
// status NA).
func NewAllocation(
	id, name string,
	address Address,
	items map[string]OrderItem,
	courier string,
	trackingID string,
	statuses []StatusEntry,
) (Allocation, error) {
	allocation := Allocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		allocation.setID(id),
		allocation.setName(name),
		allocation.setAddress(address),
		allocation.setItems(items),
		allocation.setCourier(courier),
	); err != nil {
		return Allocation{}, err
	}

	allocation.trackingID = trackingID
	allocation.statuses = sortedStatuses(statuses)
	return allocation, nil
}

// Validate ensures the allocation was created through NewAllocation.
func (a Allocation) Validate() error {
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

// ID returns the allocation identifier.
func (a Allocation) ID() string {
	return a.id
}

// Name returns the pickup location name.
func (a Allocation) Name() string {
	return a.name
}

// Address returns the pickup location address.
func (a Allocation) Address() Address {
	return a.address
}

// Items returns a copy of the allocated items, indexed by item identifier.
func (a Allocation) Items() map[string]OrderItem {
	items := make(map[string]OrderItem, len(a.items))
	for id, item := range a.items {
		items[id] = item
	}
	return items
}

// Courier returns the courier identifier used to book delivery.
func (a Allocation) Courier() string {
	return a.courier
}

// TrackingID returns the tracking identifier assigned by the courier's
// booking API, or the empty string while the allocation is not yet booked.
func (a Allocation) TrackingID() string {
	return a.trackingID
}

// Statuses returns a copy of the status history ordered by timestamp.
func (a Allocation) Statuses() []StatusEntry {
	statuses := make([]StatusEntry, len(a.statuses))
	copy(statuses, a.statuses)
	return statuses
}

// LatestStatus returns the status at the maximum timestamp, or NA when the
// history is empty.
func (a Allocation) LatestStatus() Status {
	if len(a.statuses) == 0 {
		return NA
	}
	return a.statuses[len(a.statuses)-1].status
}

// WithStatus returns a copy of the allocation with a new status entry
// appended at the given time. The history stays sorted; entries sharing a
// timestamp keep insertion order.
func (a Allocation) WithStatus(at time.Time, status Status) Allocation {
	next := a
	next.items = a.Items()
	next.statuses = insertStatus(a.Statuses(), NewStatusEntry(at, status))
	return next
}

// WithTracking returns a copy of the allocation carrying the given tracking
// identifier and a PACKED status entry at the given time.
func (a Allocation) WithTracking(trackingID string, at time.Time) Allocation {
	next := a.WithStatus(at, Packed)
	next.trackingID = trackingID
	return next
}

func (a *Allocation) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("allocation id")
	}
	a.id = id
	return nil
}

func (a *Allocation) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("allocation name")
	}
	a.name = name
	return nil
}

func (a *Allocation) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	a.address = address
	return nil
}

func (a *Allocation) setItems(items map[string]OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("allocation items")
	}
	copied := make(map[string]OrderItem, len(items))
	for id, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if id != item.ID() {
			return errs.NewValueIsInvalidError("allocation items key")
		}
		copied[id] = item
	}
	a.items = copied
	return nil
}

func (a *Allocation) setCourier(courier string) error {
	if courier == "" {
		return errs.NewValueIsRequiredError("allocation courier")
	}
	a.courier = courier
	return nil
}

func sortedStatuses(statuses []StatusEntry) []StatusEntry {
	sorted := make([]StatusEntry, len(statuses))
	copy(sorted, statuses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].at.Before(sorted[j].at)
	})
	return sorted
}

// insertStatus appends the entry after all entries with an earlier or equal
// timestamp, keeping the slice sorted without reordering equal timestamps.
func insertStatus(statuses []StatusEntry, entry StatusEntry) []StatusEntry {
	pos := sort.Search(len(statuses), func(i int) bool {
		return statuses[i].at.After(entry.at)
	})
	statuses = append(statuses, StatusEntry{})
	copy(statuses[pos+1:], statuses[pos:])
	statuses[pos] = entry
	return statuses
}
