package http

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Request and response bodies of the order API.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode int    `json:"zipCode"`
}

type CustomerDTO struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Address     AddressDTO `json:"address"`
	Email       string     `json:"email"`
	MobilePhone string     `json:"mobilePhone"`
}

type OrderItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type SubmitOrderRequest struct {
	OrderID  string         `json:"orderId"`
	Items    []OrderItemDTO `json:"items"`
	Customer CustomerDTO    `json:"customer"`
}

type UpdateTrackingRequest struct {
	Status string `json:"status"`
}

type PackAllocationResponse struct {
	TrackingID string `json:"trackingId"`
}

type StatusEntryDTO struct {
	At     time.Time `json:"at"`
	Status string    `json:"status"`
}

type AllocationDTO struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Address    AddressDTO       `json:"address"`
	Items      []OrderItemDTO   `json:"items"`
	Courier    string           `json:"courier"`
	TrackingID string           `json:"trackingId,omitempty"`
	Status     string           `json:"status"`
	History    []StatusEntryDTO `json:"history"`
}

type OrderDetailsResponse struct {
	OrderID     string          `json:"orderId"`
	Allocations []AllocationDTO `json:"allocations"`
	Customer    *CustomerDTO    `json:"customer,omitempty"`
}

func toAddressDTO(address order.Address) AddressDTO {
	return AddressDTO{
		Street:  address.Street(),
		City:    address.City(),
		Country: address.Country(),
		ZipCode: address.ZipCode(),
	}
}

func toCustomerDTO(customer order.Customer) CustomerDTO {
	return CustomerDTO{
		FirstName:   customer.FirstName(),
		LastName:    customer.LastName(),
		Address:     toAddressDTO(customer.Address()),
		Email:       customer.Email(),
		MobilePhone: customer.MobilePhone(),
	}
}

func toItemDTOs(items map[string]order.OrderItem) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, OrderItemDTO{ID: item.ID(), Name: item.Name(), Quantity: item.Quantity()})
	}
	return dtos
}

func toAllocationDTO(allocation order.Allocation) AllocationDTO {
	statuses := allocation.Statuses()
	history := make([]StatusEntryDTO, 0, len(statuses))
	for _, entry := range statuses {
		history = append(history, StatusEntryDTO{At: entry.At(), Status: entry.Status().String()})
	}

	return AllocationDTO{
		ID:         allocation.ID(),
		Name:       allocation.Name(),
		Address:    toAddressDTO(allocation.Address()),
		Items:      toItemDTOs(allocation.Items()),
		Courier:    allocation.Courier(),
		TrackingID: allocation.TrackingID(),
		Status:     allocation.LatestStatus().String(),
		History:    history,
	}
}

func toOrderDetailsResponse(orderID string, details order.Details) OrderDetailsResponse {
	allocations := details.Allocations()
	dtos := make([]AllocationDTO, 0, len(allocations))
	for _, allocation := range allocations {
		dtos = append(dtos, toAllocationDTO(allocation))
	}

	var customer *CustomerDTO
	if details.Customer() != nil {
		dto := toCustomerDTO(*details.Customer())
		customer = &dto
	}

	return OrderDetailsResponse{OrderID: orderID, Allocations: dtos, Customer: customer}
}

// toDomainItems maps request items to domain values keyed by item ID.
func toDomainItems(dtos []OrderItemDTO) (map[string]order.OrderItem, error) {
	items := make(map[string]order.OrderItem, len(dtos))
	for _, dto := range dtos {
		item, err := order.NewOrderItem(dto.ID, dto.Name, dto.Quantity)
		if err != nil {
			return nil, err
		}
		items[item.ID()] = item
	}
	return items, nil
}

func toDomainCustomer(dto CustomerDTO) (order.Customer, error) {
	address, err := order.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.Country, dto.Address.ZipCode)
	if err != nil {
		return order.Customer{}, err
	}
	return order.NewCustomer(dto.FirstName, dto.LastName, address, dto.Email, dto.MobilePhone)
}
