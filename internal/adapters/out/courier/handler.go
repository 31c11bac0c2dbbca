// Package courier implements the booking capability for the supported
// couriers: request parameter building, booking URL construction, response
// parsing, the courier registry, and the HTTP transport used to execute
// booking calls.
package courier

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// urlBuilder provides the booking URL construction shared by all couriers:
// the parameters are query-encoded and appended to the base address with '?'
// or '&' depending on whether the base already carries a query.
type urlBuilder struct{}

// BookingURL builds the callable booking target.
func (urlBuilder) BookingURL(baseURL string, params map[string]string) (string, error) {
	if baseURL == "" {
		return "", ports.NewBookingError("missing base URL")
	}
	if params == nil {
		return "", ports.NewBookingError("missing request parameters")
	}

	var request strings.Builder
	for key, value := range params {
		if key == "" {
			return "", ports.NewBookingError("empty request parameter name")
		}
		if request.Len() > 0 {
			request.WriteByte('&')
		}
		request.WriteString(key)
		request.WriteByte('=')
		request.WriteString(url.QueryEscape(value))
	}

	separator := "?"
	if strings.Contains(baseURL, "?") {
		separator = "&"
	}
	if request.Len() == 0 {
		return baseURL, nil
	}
	return baseURL + separator + request.String(), nil
}

// validateBookingInputs rejects missing or unconstructed booking inputs.
func validateBookingInputs(orderID string, allocation order.Allocation, customer order.Customer) error {
	if orderID == "" {
		return ports.NewBookingError("missing order identifier")
	}
	if err := allocation.Validate(); err != nil {
		return ports.NewBookingErrorWithCause("missing order allocation", err)
	}
	if err := customer.Validate(); err != nil {
		return ports.NewBookingErrorWithCause("missing order customer", err)
	}
	return nil
}

// parseTrackingField extracts a named string field from a JSON response body.
func parseTrackingField(body []byte, field string) (string, error) {
	if len(body) == 0 {
		return "", ports.NewBookingError("missing response")
	}

	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		return "", ports.NewBookingErrorWithCause("failed to parse response JSON", err)
	}

	value, ok := response[field]
	if !ok {
		return "", ports.NewBookingError("missing tracking identifier")
	}

	var tracking string
	switch v := value.(type) {
	case string:
		tracking = v
	case float64:
		tracking = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "", ports.NewBookingError("missing tracking identifier")
	}
	if tracking == "" {
		return "", ports.NewBookingError("missing tracking identifier")
	}
	return tracking, nil
}
