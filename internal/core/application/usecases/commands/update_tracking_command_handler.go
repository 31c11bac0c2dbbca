package commands

import (
	"context"
)

// UpdateTrackingCommandHandler forwards tracking reports to the order
// runtime, which enforces that statuses only move forward after packing.
type UpdateTrackingCommandHandler struct {
	runtime OrderRuntime
}

// NewUpdateTrackingCommandHandler creates a handler for tracking reports.
func NewUpdateTrackingCommandHandler(runtime OrderRuntime) UpdateTrackingCommandHandler {
	return UpdateTrackingCommandHandler{
		runtime: runtime,
	}
}

// Handle processes the tracking update command.
func (h *UpdateTrackingCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runtime.UpdateTracking(ctx, cmd.OrderID(), cmd.AllocationID(), cmd.Status())
}
