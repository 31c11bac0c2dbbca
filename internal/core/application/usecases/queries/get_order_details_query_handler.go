package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderDetailsProvider is the slice of the order runtime the query needs.
type OrderDetailsProvider interface {
	OrderDetails(ctx context.Context, orderID string) (order.Details, error)
}

// GetOrderDetailsQueryHandler answers order detail queries. An order that
// was never submitted yields empty allocations, which the caller treats as
// not found.
type GetOrderDetailsQueryHandler struct {
	provider OrderDetailsProvider
}

// NewGetOrderDetailsQueryHandler creates a handler for order detail queries.
func NewGetOrderDetailsQueryHandler(provider OrderDetailsProvider) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{
		provider: provider,
	}
}

// Handle processes the details query.
func (h *GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (order.Details, error) {
	if err := query.Validate(); err != nil {
		return order.Details{}, err
	}

	return h.provider.OrderDetails(ctx, query.OrderID())
}
