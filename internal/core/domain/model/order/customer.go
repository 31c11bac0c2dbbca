package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through the NewCustomer constructor.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is the immutable recipient of an order. It is owned by the order
// for the order's lifetime.
type Customer struct {
	firstName   string
	lastName    string
	address     Address
	email       string
	mobilePhone string

	guard guard.ConstructorGuard
}

// NewCustomer creates a validated customer. All fields are required and the
// address must itself be a constructed Address.
func NewCustomer(firstName, lastName string, address Address, email, mobilePhone string) (Customer, error) {
	customer := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setFirstName(firstName),
		customer.setLastName(lastName),
		customer.setAddress(address),
		customer.setEmail(email),
		customer.setMobilePhone(mobilePhone),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// FirstName returns the customer's first name.
func (c Customer) FirstName() string {
	return c.firstName
}

// LastName returns the customer's last name.
func (c Customer) LastName() string {
	return c.lastName
}

// Address returns the customer's delivery address.
func (c Customer) Address() Address {
	return c.address
}

// Email returns the customer's email address.
func (c Customer) Email() string {
	return c.email
}

// MobilePhone returns the customer's mobile phone number.
func (c Customer) MobilePhone() string {
	return c.mobilePhone
}

func (c *Customer) setFirstName(firstName string) error {
	if firstName == "" {
		return errs.NewValueIsRequiredError("customer first name")
	}
	c.firstName = firstName
	return nil
}

func (c *Customer) setLastName(lastName string) error {
	if lastName == "" {
		return errs.NewValueIsRequiredError("customer last name")
	}
	c.lastName = lastName
	return nil
}

func (c *Customer) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *Customer) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("customer email")
	}
	c.email = email
	return nil
}

func (c *Customer) setMobilePhone(mobilePhone string) error {
	if mobilePhone == "" {
		return errs.NewValueIsRequiredError("customer mobile phone")
	}
	c.mobilePhone = mobilePhone
	return nil
}
