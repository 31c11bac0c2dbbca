package courier

import (
	"strconv"

	"fulfillment/internal/core/domain/model/order"
)

// FedExBookingHandler books deliveries against the FedEx booking API. The
// request uses source*/customer* parameter names and the response carries the
// tracking identifier in the "tracking-id" field.
type FedExBookingHandler struct {
	urlBuilder
}

// NewFedExBookingHandler creates a FedEx booking handler.
func NewFedExBookingHandler() FedExBookingHandler {
	return FedExBookingHandler{}
}

// RequestParams builds the FedEx booking request parameters.
func (FedExBookingHandler) RequestParams(
	orderID string,
	allocation order.Allocation,
	customer order.Customer,
) (map[string]string, error) {
	if err := validateBookingInputs(orderID, allocation, customer); err != nil {
		return nil, err
	}

	return map[string]string{
		"orderId": orderID + "-" + allocation.ID(),
		// source location details
		"sourceName":    allocation.Name(),
		"sourceStreet":  allocation.Address().Street(),
		"sourceCity":    allocation.Address().City(),
		"sourceCountry": allocation.Address().Country(),
		"sourceZip":     strconv.Itoa(allocation.Address().ZipCode()),
		// customer (destination) details
		"customerFirstName": customer.FirstName(),
		"customerLastName":  customer.LastName(),
		"customerStreet":    customer.Address().Street(),
		"customerCity":      customer.Address().City(),
		"customerCountry":   customer.Address().Country(),
		"customerZip":       strconv.Itoa(customer.Address().ZipCode()),
		"customerEmail":     customer.Email(),
		"customerPhone":     customer.MobilePhone(),
	}, nil
}

// TrackingID extracts the tracking identifier from a FedEx booking response.
func (FedExBookingHandler) TrackingID(body []byte) (string, error) {
	return parseTrackingField(body, "tracking-id")
}
