package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line item on an order. The unit price is a snapshot taken at
// order time, in minor currency units, and stays unchanged regardless of
// later catalog price changes.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice int64

	guard guard.ConstructorGuard
}

// NewItem creates a validated line item.
// Quantity must be at least 1 and the unit price must not be negative.
func NewItem(id kernel.UUID, productID kernel.UUID, name string, quantity int, unitPrice int64) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return Item{
		id:        id,
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the line item's identity within the order.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the catalog product reference.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name snapshot taken at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the frozen per-unit price in minor currency units.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() int64 {
	return int64(i.quantity) * i.unitPrice
}
