package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through the NewAddress constructor.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is an immutable postal address used both for customers and for
// pickup locations.
type Address struct {
	street  string
	city    string
	country string
	zipCode int

	guard guard.ConstructorGuard
}

// NewAddress creates a validated address. Street, city and country must be
// non-empty; the ZIP code must be non-negative.
func NewAddress(street, city, country string, zipCode int) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setCity(city),
		address.setCountry(country),
		address.setZipCode(zipCode),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// Country returns the country name.
func (a Address) Country() string {
	return a.country
}

// ZipCode returns the postal code.
func (a Address) ZipCode() int {
	return a.zipCode
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("address street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("address city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("address country")
	}
	a.country = country
	return nil
}

func (a *Address) setZipCode(zipCode int) error {
	if zipCode < 0 {
		return errs.NewValueIsInvalidError("address zip code")
	}
	a.zipCode = zipCode
	return nil
}
