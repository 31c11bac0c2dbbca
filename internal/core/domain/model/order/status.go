package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the delivery lifecycle state of an allocation. The values
// form an ordered progression; the state machine only ever moves an
// allocation's status forward:
//
//	NA < CREATED < ALLOCATED < PACKED < PICKED_BY_COURIER < ENROUTE_TO_CUSTOMER < DELIVERED
//
// NA is the absence of any status (an empty history) and is never recorded.
type Status int

const (
	// NA means no status has been recorded for the allocation.
	NA Status = iota

	// Created marks a received order whose allocations do not exist yet.
	Created

	// Allocated marks an allocation that has been computed but not packed.
	Allocated

	// Packed marks an allocation whose items are packed and booked for delivery.
	Packed

	// PickedByCourier marks an allocation collected by the courier.
	PickedByCourier

	// EnrouteToCustomer marks an allocation on its way to the customer.
	EnrouteToCustomer

	// Delivered marks an allocation delivered to the customer.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		NA:                "NA",
		Created:           "CREATED",
		Allocated:         "ALLOCATED",
		Packed:            "PACKED",
		PickedByCourier:   "PICKED_BY_COURIER",
		EnrouteToCustomer: "ENROUTE_TO_CUSTOMER",
		Delivered:         "DELIVERED",
	}
}

// String returns the wire name of the status, or "NA" for unknown values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "NA"
}

// Validate checks that the status is one of the defined lifecycle values.
// NA is valid only as the absence of a status and is rejected here.
func (s Status) Validate() error {
	if s <= NA || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// ParseStatus converts a wire name back into a Status.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != NA {
			return status, nil
		}
	}
	return NA, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", name),
	)
}
