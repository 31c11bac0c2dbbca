package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPackAllocationCommandIsNotConstructed = errors.New(
	"PackAllocationCommand must be created via NewPackAllocationCommand constructor",
)

// PackAllocationCommand represents a request to pack an allocation and book
// its courier pickup.
type PackAllocationCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	allocationID string

	guard guard.ConstructorGuard
}

// NewPackAllocationCommand creates a command to pack an allocation.
// Both identifiers must be non-blank.
func NewPackAllocationCommand(orderID, allocationID string) (PackAllocationCommand, error) {
	command := PackAllocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAllocationID(allocationID),
	); err != nil {
		return PackAllocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PackAllocationCommand) Validate() error {
	return c.guard.Validate(ErrPackAllocationCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c PackAllocationCommand) OrderID() string {
	return c.orderID
}

// AllocationID returns the allocation to pack.
func (c PackAllocationCommand) AllocationID() string {
	return c.allocationID
}

func (c *PackAllocationCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *PackAllocationCommand) setAllocationID(allocationID string) error {
	if allocationID == "" {
		return errs.NewValueIsRequiredError("allocationID")
	}

	c.allocationID = allocationID
	return nil
}
