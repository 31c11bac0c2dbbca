// Package services provides domain services that implement business
// operations which don't naturally belong to a single value object.
//
// The package includes:
//   - Allocator: a domain service that decides how an order's items are
//     split across pickup/delivery allocation groups
//
// Domain services stay free of infrastructure; the allocation computation is
// a pure function of its inputs plus an injectable source of randomness.
package services
