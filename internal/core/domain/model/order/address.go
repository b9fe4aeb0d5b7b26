package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created through NewAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the structured postal address an order ships to.
// Full name, phone, street, building, area, and city are required;
// floor, apartment, and landmark are optional hints for the courier.
type Address struct {
	fullName  string
	phone     string
	street    string
	building  string
	floor     string
	apartment string
	area      string
	city      string
	landmark  string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated shipping address.
func NewAddress(
	fullName, phone, street, building, floor, apartment, area, city, landmark string,
) (Address, error) {
	address := Address{
		floor:     floor,
		apartment: apartment,
		landmark:  landmark,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setFullName(fullName),
		address.setPhone(phone),
		address.setStreet(street),
		address.setBuilding(building),
		address.setArea(area),
		address.setCity(city),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns the recipient's full name.
func (a Address) FullName() string { return a.fullName }

// Phone returns the recipient's contact phone number.
func (a Address) Phone() string { return a.phone }

// Street returns the street name.
func (a Address) Street() string { return a.street }

// Building returns the building number or name.
func (a Address) Building() string { return a.building }

// Floor returns the optional floor. Empty when not provided.
func (a Address) Floor() string { return a.floor }

// Apartment returns the optional apartment. Empty when not provided.
func (a Address) Apartment() string { return a.apartment }

// Area returns the district or area.
func (a Address) Area() string { return a.area }

// City returns the city.
func (a Address) City() string { return a.city }

// Landmark returns optional nearby landmarks. Empty when not provided.
func (a Address) Landmark() string { return a.landmark }

func (a *Address) setFullName(fullName string) error {
	if fullName == "" {
		return errs.NewValueIsRequiredError("fullName")
	}
	a.fullName = fullName
	return nil
}

func (a *Address) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setBuilding(building string) error {
	if building == "" {
		return errs.NewValueIsRequiredError("building")
	}
	a.building = building
	return nil
}

func (a *Address) setArea(area string) error {
	if area == "" {
		return errs.NewValueIsRequiredError("area")
	}
	a.area = area
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
