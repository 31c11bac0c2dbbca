package commands

import (
	"context"
)

// SubmitOrderCommandHandler registers new orders with the order runtime,
// which persists the receipt and starts the allocation worker.
type SubmitOrderCommandHandler struct {
	runtime OrderRuntime
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(runtime OrderRuntime) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		runtime: runtime,
	}
}

// Handle processes the order submission command.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runtime.SubmitOrder(ctx, cmd.OrderID(), cmd.Items(), cmd.Customer())
}
