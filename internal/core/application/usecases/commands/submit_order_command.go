package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a request to register a new purchase order
// with its items and customer.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand("order-17", items, customer)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewSubmitOrderCommandHandler(orderRuntime)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  string
	items    map[string]order.OrderItem
	customer order.Customer

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new order. Validates
// that the order ID is not blank, the item set is non-empty and keyed by
// item ID, and the customer is fully constructed.
func NewSubmitOrderCommand(
	orderID string,
	items map[string]order.OrderItem,
	customer order.Customer,
) (SubmitOrderCommand, error) {
	command := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItems(items),
		command.setCustomer(customer),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c SubmitOrderCommand) OrderID() string {
	return c.orderID
}

// Items returns a copy of the ordered items indexed by item identifier.
func (c SubmitOrderCommand) Items() map[string]order.OrderItem {
	items := make(map[string]order.OrderItem, len(c.items))
	for id, item := range c.items {
		items[id] = item
	}
	return items
}

// Customer returns the ordering customer.
func (c SubmitOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c *SubmitOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setItems(items map[string]order.OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	copied := make(map[string]order.OrderItem, len(items))
	for id, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if id != item.ID() {
			return errs.NewValueIsInvalidError("items")
		}
		copied[id] = item
	}

	c.items = copied
	return nil
}

func (c *SubmitOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}
