package courier

import (
	"context"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/ports"
)

const (
	defaultRequestTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a booking response is read.
	maxResponseBytes = 1 << 20
)

// HTTPTransport invokes booking endpoints over HTTP.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport with the default request timeout.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// NewHTTPTransportWithClient creates a transport using the given client.
func NewHTTPTransportWithClient(client *http.Client) *HTTPTransport {
	return &HTTPTransport{client: client}
}

// Invoke performs a GET against the booking URL and returns the response
// status and body.
func (t *HTTPTransport) Invoke(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, ports.NewBookingErrorWithCause("invalid booking request", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, ports.NewBookingErrorWithCause("booking endpoint unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, ports.NewBookingErrorWithCause("reading booking response", err)
	}

	return resp.StatusCode, body, nil
}
