package courier_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/courier"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

func testCustomer(t *testing.T) order.Customer {
	t.Helper()
	address, err := order.NewAddress("Some Street 42", "Tel Aviv", "Israel", 12345)
	require.NoError(t, err)
	customer, err := order.NewCustomer("Eran", "Eyal", address, "someone@gmail.com", "0521234567")
	require.NoError(t, err)
	return customer
}

func testAllocation(t *testing.T, courierName string) order.Allocation {
	t.Helper()
	address, err := order.NewAddress("Namir 15", "Tel Aviv", "Israel", 12345)
	require.NoError(t, err)
	item, err := order.NewOrderItem("1", "pencil", 5)
	require.NoError(t, err)
	allocation, err := order.NewAllocation(
		"1", "TLV Warehouse", address,
		map[string]order.OrderItem{"1": item},
		courierName, "", nil,
	)
	require.NoError(t, err)
	return allocation
}

func TestFedExBookingHandler(t *testing.T) {
	handler := courier.NewFedExBookingHandler()

	t.Run("builds the source and customer parameters", func(t *testing.T) {
		params, err := handler.RequestParams("order-1", testAllocation(t, "FedEx"), testCustomer(t))
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"orderId":           "order-1-1",
			"sourceName":        "TLV Warehouse",
			"sourceStreet":      "Namir 15",
			"sourceCity":        "Tel Aviv",
			"sourceCountry":     "Israel",
			"sourceZip":         "12345",
			"customerFirstName": "Eran",
			"customerLastName":  "Eyal",
			"customerStreet":    "Some Street 42",
			"customerCity":      "Tel Aviv",
			"customerCountry":   "Israel",
			"customerZip":       "12345",
			"customerEmail":     "someone@gmail.com",
			"customerPhone":     "0521234567",
		}, params)
	})

	t.Run("rejects missing inputs", func(t *testing.T) {
		_, err := handler.RequestParams("", testAllocation(t, "FedEx"), testCustomer(t))
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.RequestParams("order-1", order.Allocation{}, testCustomer(t))
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.RequestParams("order-1", testAllocation(t, "FedEx"), order.Customer{})
		assert.ErrorIs(t, err, ports.ErrBooking)
	})

	t.Run("extracts the tracking identifier", func(t *testing.T) {
		tracking, err := handler.TrackingID([]byte(`{"tracking-id":"fdx-42"}`))
		require.NoError(t, err)
		assert.Equal(t, "fdx-42", tracking)
	})

	t.Run("accepts a numeric tracking identifier", func(t *testing.T) {
		tracking, err := handler.TrackingID([]byte(`{"tracking-id":9000177}`))
		require.NoError(t, err)
		assert.Equal(t, "9000177", tracking)
	})

	t.Run("rejects responses without a tracking identifier", func(t *testing.T) {
		_, err := handler.TrackingID(nil)
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.TrackingID([]byte(`{}`))
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.TrackingID([]byte(`{"tracking-id":""}`))
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.TrackingID([]byte(`not json`))
		assert.ErrorIs(t, err, ports.ErrBooking)
	})
}

func TestDeliverItBookingHandler(t *testing.T) {
	handler := courier.NewDeliverItBookingHandler()

	t.Run("builds the from and to parameters", func(t *testing.T) {
		params, err := handler.RequestParams("order-1", testAllocation(t, "DeliverIt"), testCustomer(t))
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"orderId":     "order-1-1",
			"fromName":    "TLV Warehouse",
			"fromStreet":  "Namir 15",
			"fromCity":    "Tel Aviv",
			"fromCountry": "Israel",
			"fromZip":     "12345",
			"toFirstName": "Eran",
			"toLastName":  "Eyal",
			"toStreet":    "Some Street 42",
			"toCity":      "Tel Aviv",
			"toCountry":   "Israel",
			"toZip":       "12345",
			"toEmail":     "someone@gmail.com",
			"toPhone":     "0521234567",
		}, params)
	})

	t.Run("extracts the tracking number", func(t *testing.T) {
		tracking, err := handler.TrackingID([]byte(`{"tracking-number":"dlv-7"}`))
		require.NoError(t, err)
		assert.Equal(t, "dlv-7", tracking)
	})
}

func TestFakeBookingHandler(t *testing.T) {
	handler := courier.NewFakeBookingHandler()

	t.Run("sends no request parameters", func(t *testing.T) {
		params, err := handler.RequestParams("order-1", testAllocation(t, "Nameless"), testCustomer(t))
		require.NoError(t, err)
		assert.Empty(t, params)
	})

	t.Run("fabricates a tracking identifier ignoring the response", func(t *testing.T) {
		first, err := handler.TrackingID(nil)
		require.NoError(t, err)
		second, err := handler.TrackingID([]byte("garbage"))
		require.NoError(t, err)

		_, err = uuid.Parse(first)
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestBookingURL(t *testing.T) {
	handler := courier.NewFedExBookingHandler()

	t.Run("appends query parameters with escaping", func(t *testing.T) {
		bookingURL, err := handler.BookingURL("http://example.com/book", map[string]string{"name": "TLV Warehouse"})
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/book?name=TLV+Warehouse", bookingURL)
	})

	t.Run("continues an existing query with ampersand", func(t *testing.T) {
		bookingURL, err := handler.BookingURL("http://example.com/book?v=1", map[string]string{"name": "x"})
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/book?v=1&name=x", bookingURL)
	})

	t.Run("returns the base address when there are no parameters", func(t *testing.T) {
		bookingURL, err := handler.BookingURL("http://example.com/book", map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/book", bookingURL)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := handler.BookingURL("", map[string]string{"a": "b"})
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.BookingURL("http://example.com/book", nil)
		assert.ErrorIs(t, err, ports.ErrBooking)

		_, err = handler.BookingURL("http://example.com/book", map[string]string{"": "b"})
		assert.ErrorIs(t, err, ports.ErrBooking)
	})
}

func TestRegistry(t *testing.T) {
	registry := courier.NewRegistry(courier.Endpoints{
		FedEx:     "http://couriers.local/fedex",
		DeliverIt: "http://couriers.local/deliverit",
		Default:   "http://couriers.local/any",
	})

	t.Run("resolves the known couriers", func(t *testing.T) {
		assert.Equal(t, "FedEx", registry.Lookup("FedEx").ID())
		assert.Equal(t, "http://couriers.local/fedex", registry.Lookup("FedEx").BaseURL())
		assert.Equal(t, "DeliverIt", registry.Lookup("DeliverIt").ID())
	})

	t.Run("falls back to the default for unknown couriers", func(t *testing.T) {
		api := registry.Lookup("Nameless Courier")
		assert.Equal(t, "Default", api.ID())
		assert.Equal(t, "http://couriers.local/any", api.BaseURL())
	})
}
