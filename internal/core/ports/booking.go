package ports

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// ErrBooking is the sentinel all booking capability failures unwrap to.
var ErrBooking = errors.New("booking failed")

// BookingError reports a failure of the booking capability: missing inputs,
// parameters that cannot be safely encoded, or a response that cannot be
// parsed or lacks the expected field.
type BookingError struct {
	Message string
	Cause   error
}

// NewBookingError creates a BookingError without an underlying cause.
func NewBookingError(message string) *BookingError {
	return &BookingError{Message: message}
}

// NewBookingErrorWithCause creates a BookingError wrapping an underlying cause.
func NewBookingErrorWithCause(message string, cause error) *BookingError {
	return &BookingError{Message: message, Cause: cause}
}

func (e *BookingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrBooking, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrBooking, e.Message)
}

func (e *BookingError) Unwrap() error {
	return ErrBooking
}

// BookingHandler is the courier-specific capability for booking a delivery:
// it builds request parameters from an order's allocation and customer,
// builds the callable target from a base endpoint and those parameters, and
// parses the carrier response into a tracking identifier.
type BookingHandler interface {
	// RequestParams builds the booking request parameters.
	RequestParams(orderID string, allocation order.Allocation, customer order.Customer) (map[string]string, error)

	// BookingURL builds the callable target from the base endpoint and params.
	BookingURL(baseURL string, params map[string]string) (string, error)

	// TrackingID extracts the tracking identifier from the response body.
	TrackingID(body []byte) (string, error)
}

// BookingAPI pairs a courier identifier with its booking endpoint and handler.
type BookingAPI struct {
	id      string
	baseURL string
	handler BookingHandler
}

// NewBookingAPI creates a booking API descriptor.
func NewBookingAPI(id, baseURL string, handler BookingHandler) BookingAPI {
	return BookingAPI{id: id, baseURL: baseURL, handler: handler}
}

// ID returns the courier identifier.
func (a BookingAPI) ID() string {
	return a.id
}

// BaseURL returns the booking endpoint base address.
func (a BookingAPI) BaseURL() string {
	return a.baseURL
}

// Handler returns the courier-specific booking handler.
func (a BookingAPI) Handler() BookingHandler {
	return a.handler
}

// BookingRegistry is a read-only mapping of courier identifiers to booking
// APIs with a designated default for unrecognized identifiers. It is built
// once at composition time and injected into the components that need it.
type BookingRegistry struct {
	apis     map[string]BookingAPI
	fallback BookingAPI
}

// NewBookingRegistry creates a registry with a default API and any number of
// courier-specific ones.
func NewBookingRegistry(fallback BookingAPI, apis ...BookingAPI) BookingRegistry {
	indexed := make(map[string]BookingAPI, len(apis))
	for _, api := range apis {
		indexed[api.ID()] = api
	}
	return BookingRegistry{apis: indexed, fallback: fallback}
}

// Lookup returns the booking API for the courier identifier, falling back to
// the default when the identifier is unregistered.
func (r BookingRegistry) Lookup(courierID string) BookingAPI {
	if api, ok := r.apis[courierID]; ok {
		return api
	}
	return r.fallback
}

// BookingTransport performs the booking HTTP call. Implementations bound the
// amount of response body they buffer.
type BookingTransport interface {
	// Invoke calls the target and returns the response status code and body.
	Invoke(ctx context.Context, url string) (status int, body []byte, err error)
}
