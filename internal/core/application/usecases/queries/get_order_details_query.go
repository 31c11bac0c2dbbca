// Package queries contains read-only operations against the order runtime.
package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery requests a uniform snapshot of one order: its
// allocations and customer regardless of lifecycle phase.
type GetOrderDetailsQuery struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery creates a details query for a non-blank order ID.
func NewGetOrderDetailsQuery(orderID string) (GetOrderDetailsQuery, error) {
	query := GetOrderDetailsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// OrderID returns the queried order identifier.
func (q GetOrderDetailsQuery) OrderID() string {
	return q.orderID
}

func (q *GetOrderDetailsQuery) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	q.orderID = orderID
	return nil
}
