package eventstore

import (
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Journal event type discriminators.
const (
	typeOrderReceived            = "OrderReceived"
	typeOrderAllocationsReceived = "OrderAllocationsReceived"
	typeOrderAllocationPacked    = "OrderAllocationPacked"
	typeTrackingUpdated          = "TrackingUpdated"
)

// Snapshot state discriminators.
const (
	stateBlank     = "Blank"
	stateNew       = "New"
	stateAllocated = "Allocated"
)

type itemPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type addressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode int    `json:"zipCode"`
}

type customerPayload struct {
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Address     addressPayload `json:"address"`
	Email       string         `json:"email"`
	MobilePhone string         `json:"mobilePhone"`
}

type statusEntryPayload struct {
	At     time.Time `json:"at"`
	Status string    `json:"status"`
}

type allocationPayload struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Address    addressPayload         `json:"address"`
	Items      map[string]itemPayload `json:"items"`
	Courier    string                 `json:"courier"`
	TrackingID string                 `json:"trackingId,omitempty"`
	Statuses   []statusEntryPayload   `json:"statuses,omitempty"`
}

type orderReceivedPayload struct {
	OrderID  string                 `json:"orderId"`
	Items    map[string]itemPayload `json:"items"`
	Customer customerPayload        `json:"customer"`
}

type allocationsReceivedPayload struct {
	OrderID     string                       `json:"orderId"`
	Allocations map[string]allocationPayload `json:"allocations"`
}

type allocationPackedPayload struct {
	OrderID      string    `json:"orderId"`
	AllocationID string    `json:"allocationId"`
	TrackingID   string    `json:"trackingId"`
	At           time.Time `json:"at"`
}

type trackingUpdatedPayload struct {
	OrderID      string    `json:"orderId"`
	AllocationID string    `json:"allocationId"`
	Status       string    `json:"status"`
	At           time.Time `json:"at"`
}

type statePayload struct {
	Kind        string                       `json:"kind"`
	Items       map[string]itemPayload       `json:"items,omitempty"`
	Allocations map[string]allocationPayload `json:"allocations,omitempty"`
	Customer    *customerPayload             `json:"customer,omitempty"`
}

func itemsToPayload(items map[string]order.OrderItem) map[string]itemPayload {
	payload := make(map[string]itemPayload, len(items))
	for id, item := range items {
		payload[id] = itemPayload{ID: item.ID(), Name: item.Name(), Quantity: item.Quantity()}
	}
	return payload
}

func itemsFromPayload(payload map[string]itemPayload) (map[string]order.OrderItem, error) {
	items := make(map[string]order.OrderItem, len(payload))
	for id, p := range payload {
		item, err := order.NewOrderItem(p.ID, p.Name, p.Quantity)
		if err != nil {
			return nil, err
		}
		items[id] = item
	}
	return items, nil
}

func addressToPayload(address order.Address) addressPayload {
	return addressPayload{
		Street:  address.Street(),
		City:    address.City(),
		Country: address.Country(),
		ZipCode: address.ZipCode(),
	}
}

func addressFromPayload(payload addressPayload) (order.Address, error) {
	return order.NewAddress(payload.Street, payload.City, payload.Country, payload.ZipCode)
}

func customerToPayload(customer order.Customer) customerPayload {
	return customerPayload{
		FirstName:   customer.FirstName(),
		LastName:    customer.LastName(),
		Address:     addressToPayload(customer.Address()),
		Email:       customer.Email(),
		MobilePhone: customer.MobilePhone(),
	}
}

func customerFromPayload(payload customerPayload) (order.Customer, error) {
	address, err := addressFromPayload(payload.Address)
	if err != nil {
		return order.Customer{}, err
	}
	return order.NewCustomer(payload.FirstName, payload.LastName, address, payload.Email, payload.MobilePhone)
}

func allocationToPayload(allocation order.Allocation) allocationPayload {
	statuses := allocation.Statuses()
	entries := make([]statusEntryPayload, 0, len(statuses))
	for _, entry := range statuses {
		entries = append(entries, statusEntryPayload{At: entry.At(), Status: entry.Status().String()})
	}

	return allocationPayload{
		ID:         allocation.ID(),
		Name:       allocation.Name(),
		Address:    addressToPayload(allocation.Address()),
		Items:      itemsToPayload(allocation.Items()),
		Courier:    allocation.Courier(),
		TrackingID: allocation.TrackingID(),
		Statuses:   entries,
	}
}

func allocationFromPayload(payload allocationPayload) (order.Allocation, error) {
	address, err := addressFromPayload(payload.Address)
	if err != nil {
		return order.Allocation{}, err
	}
	items, err := itemsFromPayload(payload.Items)
	if err != nil {
		return order.Allocation{}, err
	}

	statuses := make([]order.StatusEntry, 0, len(payload.Statuses))
	for _, entry := range payload.Statuses {
		status, parseErr := order.ParseStatus(entry.Status)
		if parseErr != nil {
			return order.Allocation{}, parseErr
		}
		statuses = append(statuses, order.NewStatusEntry(entry.At, status))
	}

	return order.NewAllocation(
		payload.ID, payload.Name, address, items,
		payload.Courier, payload.TrackingID, statuses,
	)
}

func allocationsToPayload(allocations map[string]order.Allocation) map[string]allocationPayload {
	payload := make(map[string]allocationPayload, len(allocations))
	for id, allocation := range allocations {
		payload[id] = allocationToPayload(allocation)
	}
	return payload
}

func allocationsFromPayload(payload map[string]allocationPayload) (map[string]order.Allocation, error) {
	allocations := make(map[string]order.Allocation, len(payload))
	for id, p := range payload {
		allocation, err := allocationFromPayload(p)
		if err != nil {
			return nil, err
		}
		allocations[id] = allocation
	}
	return allocations, nil
}

// encodeEvent maps a domain event to its type discriminator and JSON payload.
func encodeEvent(event order.Event) (string, []byte, error) {
	switch e := event.(type) {
	case order.OrderReceived:
		payload, err := json.Marshal(orderReceivedPayload{
			OrderID:  e.OrderID(),
			Items:    itemsToPayload(e.Items()),
			Customer: customerToPayload(e.Customer()),
		})
		return typeOrderReceived, payload, err
	case order.OrderAllocationsReceived:
		payload, err := json.Marshal(allocationsReceivedPayload{
			OrderID:     e.OrderID(),
			Allocations: allocationsToPayload(e.Allocations()),
		})
		return typeOrderAllocationsReceived, payload, err
	case order.OrderAllocationPacked:
		payload, err := json.Marshal(allocationPackedPayload{
			OrderID:      e.OrderID(),
			AllocationID: e.AllocationID(),
			TrackingID:   e.TrackingID(),
			At:           e.At(),
		})
		return typeOrderAllocationPacked, payload, err
	case order.TrackingUpdated:
		payload, err := json.Marshal(trackingUpdatedPayload{
			OrderID:      e.OrderID(),
			AllocationID: e.AllocationID(),
			Status:       e.Status().String(),
			At:           e.At(),
		})
		return typeTrackingUpdated, payload, err
	default:
		return "", nil, errs.NewValueIsInvalidError("event")
	}
}

// decodeEvent rebuilds a domain event from its journal row.
func decodeEvent(eventType string, payload []byte) (order.Event, error) {
	switch eventType {
	case typeOrderReceived:
		var p orderReceivedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}
		items, err := itemsFromPayload(p.Items)
		if err != nil {
			return nil, err
		}
		customer, err := customerFromPayload(p.Customer)
		if err != nil {
			return nil, err
		}
		return order.NewOrderReceived(p.OrderID, items, customer), nil
	case typeOrderAllocationsReceived:
		var p allocationsReceivedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}
		allocations, err := allocationsFromPayload(p.Allocations)
		if err != nil {
			return nil, err
		}
		return order.NewOrderAllocationsReceived(p.OrderID, allocations), nil
	case typeOrderAllocationPacked:
		var p allocationPackedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}
		return order.NewOrderAllocationPacked(p.OrderID, p.AllocationID, p.TrackingID, p.At), nil
	case typeTrackingUpdated:
		var p trackingUpdatedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
		}
		status, err := order.ParseStatus(p.Status)
		if err != nil {
			return nil, err
		}
		return order.NewTrackingUpdated(p.OrderID, p.AllocationID, status, p.At), nil
	default:
		return nil, errs.NewValueIsInvalidError(fmt.Sprintf("event type %q", eventType))
	}
}

// encodeState maps an order state to its snapshot JSON payload.
func encodeState(state order.State) ([]byte, error) {
	switch s := state.(type) {
	case order.BlankState:
		return json.Marshal(statePayload{Kind: stateBlank})
	case order.NewOrderState:
		customer := customerToPayload(s.Customer())
		return json.Marshal(statePayload{
			Kind:     stateNew,
			Items:    itemsToPayload(s.Items()),
			Customer: &customer,
		})
	case order.AllocatedOrderState:
		customer := customerToPayload(s.Customer())
		return json.Marshal(statePayload{
			Kind:        stateAllocated,
			Allocations: allocationsToPayload(s.Allocations()),
			Customer:    &customer,
		})
	default:
		return nil, errs.NewValueIsInvalidError("state")
	}
}

// decodeState rebuilds an order state from its snapshot payload.
func decodeState(payload []byte) (order.State, error) {
	var p statePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	switch p.Kind {
	case stateBlank:
		return order.BlankState{}, nil
	case stateNew:
		if p.Customer == nil {
			return nil, errs.NewValueIsRequiredError("customer")
		}
		customer, err := customerFromPayload(*p.Customer)
		if err != nil {
			return nil, err
		}
		items, err := itemsFromPayload(p.Items)
		if err != nil {
			return nil, err
		}
		return order.RestoreNewOrderState(items, customer)
	case stateAllocated:
		if p.Customer == nil {
			return nil, errs.NewValueIsRequiredError("customer")
		}
		customer, err := customerFromPayload(*p.Customer)
		if err != nil {
			return nil, err
		}
		allocations, err := allocationsFromPayload(p.Allocations)
		if err != nil {
			return nil, err
		}
		return order.RestoreAllocatedOrderState(allocations, customer)
	default:
		return nil, errs.NewValueIsInvalidError(fmt.Sprintf("state kind %q", p.Kind))
	}
}
