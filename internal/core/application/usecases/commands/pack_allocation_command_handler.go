package commands

import (
	"context"
)

// PackAllocationCommandHandler packs allocations through the order runtime.
// Packing an already packed allocation succeeds and returns the tracking
// identifier assigned the first time.
type PackAllocationCommandHandler struct {
	runtime OrderRuntime
}

// NewPackAllocationCommandHandler creates a handler for pack requests.
func NewPackAllocationCommandHandler(runtime OrderRuntime) PackAllocationCommandHandler {
	return PackAllocationCommandHandler{
		runtime: runtime,
	}
}

// Handle processes the pack command and returns the courier tracking
// identifier.
func (h *PackAllocationCommandHandler) Handle(ctx context.Context, cmd PackAllocationCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	return h.runtime.PackAllocation(ctx, cmd.OrderID(), cmd.AllocationID())
}
