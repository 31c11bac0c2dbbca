// Package order contains the domain model of a purchase order: the immutable
// value objects (OrderItem, Address, Customer, Allocation), the delivery
// Status lifecycle, the tagged order State, and the persisted Event types
// together with the pure Apply transition function.
//
// The package is deliberately free of infrastructure. State transitions are
// pure functions over (State, Event) so that rebuilding an order by replaying
// its journal needs nothing beyond this package.
package order
