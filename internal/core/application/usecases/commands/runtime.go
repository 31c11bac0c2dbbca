// Package commands contains business operations that modify order state.
// All commands follow a consistent pattern: a validated command object built
// through a constructor, and a handler that forwards it to the order runtime.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRuntime is the slice of the order runtime the command handlers need.
type OrderRuntime interface {
	SubmitOrder(ctx context.Context, orderID string, items map[string]order.OrderItem, customer order.Customer) error
	PackAllocation(ctx context.Context, orderID, allocationID string) (string, error)
	UpdateTracking(ctx context.Context, orderID, allocationID string, status order.Status) error
}
