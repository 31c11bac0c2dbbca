package courier

import (
	"context"
	"fmt"
	"net/http"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Booker books a courier pickup for an allocation. It resolves the courier's
// booking API, builds the request and extracts the tracking identifier from
// the response.
type Booker struct {
	registry  ports.BookingRegistry
	transport ports.BookingTransport
}

// NewBooker creates a Booker over the given registry and transport.
func NewBooker(registry ports.BookingRegistry, transport ports.BookingTransport) *Booker {
	return &Booker{registry: registry, transport: transport}
}

// Book requests a pickup for the allocation and returns the tracking
// identifier assigned by the courier.
func (b *Booker) Book(
	ctx context.Context,
	orderID string,
	allocation order.Allocation,
	customer order.Customer,
) (string, error) {
	api := b.registry.Lookup(allocation.Courier())

	params, err := api.Handler().RequestParams(orderID, allocation, customer)
	if err != nil {
		return "", err
	}

	bookingURL, err := api.Handler().BookingURL(api.BaseURL(), params)
	if err != nil {
		return "", err
	}

	status, body, err := b.transport.Invoke(ctx, bookingURL)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", ports.NewBookingError(fmt.Sprintf("booking endpoint returned status %d", status))
	}

	return api.Handler().TrackingID(body)
}
