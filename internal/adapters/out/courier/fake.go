package courier

import (
	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/order"
)

// FakeBookingHandler is a stand-in for couriers without a real booking API.
// It sends no request parameters and fabricates a tracking identifier,
// ignoring whatever the endpoint returned.
type FakeBookingHandler struct {
	urlBuilder
}

// NewFakeBookingHandler creates a fake booking handler.
func NewFakeBookingHandler() FakeBookingHandler {
	return FakeBookingHandler{}
}

func (FakeBookingHandler) RequestParams(
	orderID string,
	allocation order.Allocation,
	customer order.Customer,
) (map[string]string, error) {
	if err := validateBookingInputs(orderID, allocation, customer); err != nil {
		return nil, err
	}
	return map[string]string{}, nil
}

func (FakeBookingHandler) TrackingID(_ []byte) (string, error) {
	return uuid.NewString(), nil
}
