package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateTrackingCommandIsNotConstructed = errors.New(
	"UpdateTrackingCommand must be created via NewUpdateTrackingCommand constructor",
)

// UpdateTrackingCommand represents a delivery-tracking status report for a
// packed allocation.
type UpdateTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	allocationID string
	status       order.Status

	guard guard.ConstructorGuard
}

// NewUpdateTrackingCommand creates a command to advance an allocation's
// tracking status. The status must be a valid named status.
func NewUpdateTrackingCommand(orderID, allocationID string, status order.Status) (UpdateTrackingCommand, error) {
	command := UpdateTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAllocationID(allocationID),
		command.setStatus(status),
	); err != nil {
		return UpdateTrackingCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c UpdateTrackingCommand) OrderID() string {
	return c.orderID
}

// AllocationID returns the tracked allocation.
func (c UpdateTrackingCommand) AllocationID() string {
	return c.allocationID
}

// Status returns the reported tracking status.
func (c UpdateTrackingCommand) Status() order.Status {
	return c.status
}

func (c *UpdateTrackingCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateTrackingCommand) setAllocationID(allocationID string) error {
	if allocationID == "" {
		return errs.NewValueIsRequiredError("allocationID")
	}

	c.allocationID = allocationID
	return nil
}

func (c *UpdateTrackingCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
