package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was not
// created through the NewOrderItem constructor.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// OrderItem is an immutable line item of an order. Items are identified by an
// item identifier that is unique within the order and are never mutated after
// construction.
type OrderItem struct {
	id       string
	name     string
	quantity int

	guard guard.ConstructorGuard
}

// NewOrderItem creates a validated order item.
//
// The item identifier and name must be non-empty and the quantity must be
// positive.
func NewOrderItem(id, name string, quantity int) (OrderItem, error) {
	item := OrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewOrderItem.
func (i OrderItem) Validate() error {
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ID returns the item identifier.
func (i OrderItem) ID() string {
	return i.id
}

// Name returns the item name.
func (i OrderItem) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i OrderItem) Quantity() int {
	return i.quantity
}

func (i *OrderItem) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("item id")
	}
	i.id = id
	return nil
}

func (i *OrderItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("item quantity")
	}
	i.quantity = quantity
	return nil
}
