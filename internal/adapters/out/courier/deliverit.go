package courier

import (
	"strconv"

	"fulfillment/internal/core/domain/model/order"
)

// DeliverItBookingHandler books deliveries against the DeliverIt booking API.
// The request uses from*/to* parameter names and the response carries the
// tracking identifier in the "tracking-number" field.
type DeliverItBookingHandler struct {
	urlBuilder
}

// NewDeliverItBookingHandler creates a DeliverIt booking handler.
func NewDeliverItBookingHandler() DeliverItBookingHandler {
	return DeliverItBookingHandler{}
}

// RequestParams builds the DeliverIt booking request parameters.
func (DeliverItBookingHandler) RequestParams(
	orderID string,
	allocation order.Allocation,
	customer order.Customer,
) (map[string]string, error) {
	if err := validateBookingInputs(orderID, allocation, customer); err != nil {
		return nil, err
	}

	return map[string]string{
		"orderId": orderID + "-" + allocation.ID(),
		// from
		"fromName":    allocation.Name(),
		"fromStreet":  allocation.Address().Street(),
		"fromCity":    allocation.Address().City(),
		"fromCountry": allocation.Address().Country(),
		"fromZip":     strconv.Itoa(allocation.Address().ZipCode()),
		// to
		"toFirstName": customer.FirstName(),
		"toLastName":  customer.LastName(),
		"toStreet":    customer.Address().Street(),
		"toCity":      customer.Address().City(),
		"toCountry":   customer.Address().Country(),
		"toZip":       strconv.Itoa(customer.Address().ZipCode()),
		"toEmail":     customer.Email(),
		"toPhone":     customer.MobilePhone(),
	}, nil
}

// TrackingID extracts the tracking identifier from a DeliverIt booking response.
func (DeliverItBookingHandler) TrackingID(body []byte) (string, error) {
	return parseTrackingField(body, "tracking-number")
}
