package courier

import (
	"fulfillment/internal/core/ports"
)

// Endpoints holds the booking URLs of the known couriers. An empty URL
// falls back to the matching default below.
type Endpoints struct {
	FedEx     string
	DeliverIt string
	Default   string
}

const (
	defaultFedExURL     = "http://localhost:8080/courier/fedex-book.jsp"
	defaultDeliverItURL = "http://localhost:8080/courier/deliverit-book.jsp"
	defaultFallbackURL  = "http://www.example.com"
)

// NewRegistry builds the booking registry with the FedEx and DeliverIt
// handlers plus a fake fallback used for every other courier.
func NewRegistry(endpoints Endpoints) ports.BookingRegistry {
	if endpoints.FedEx == "" {
		endpoints.FedEx = defaultFedExURL
	}
	if endpoints.DeliverIt == "" {
		endpoints.DeliverIt = defaultDeliverItURL
	}
	if endpoints.Default == "" {
		endpoints.Default = defaultFallbackURL
	}

	return ports.NewBookingRegistry(
		ports.NewBookingAPI("Default", endpoints.Default, NewFakeBookingHandler()),
		ports.NewBookingAPI("FedEx", endpoints.FedEx, NewFedExBookingHandler()),
		ports.NewBookingAPI("DeliverIt", endpoints.DeliverIt, NewDeliverItBookingHandler()),
	)
}
