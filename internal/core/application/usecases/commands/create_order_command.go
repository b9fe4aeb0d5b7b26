package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new order.
// Encapsulates the frozen line items, monetary amounts, shipping address,
// and payment method tag; the monetary invariant itself is enforced by the
// order aggregate on construction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "ORD-20260413-A1B2", customerID,
//	    items, 1000, 100, 140, 1240, address, order.PaymentCard,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	number        string
	customerID    kernel.UUID
	items         []order.Item
	subtotal      int64
	shippingFee   int64
	tax           int64
	total         int64
	address       order.Address
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identities, the order number, line items, address, and payment
// method. Monetary amounts are carried as-is; the aggregate constructor
// rejects violations of total = subtotal + shippingFee + tax.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	customerID kernel.UUID,
	items []order.Item,
	subtotal, shippingFee, tax, total int64,
	address order.Address,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		subtotal:    subtotal,
		shippingFee: shippingFee,
		tax:         tax,
		total:       total,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setCustomerID(customerID),
		orderCommand.setItems(items),
		orderCommand.setAddress(address),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-facing order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the order's line items.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// Subtotal returns the item subtotal in minor currency units.
func (c CreateOrderCommand) Subtotal() int64 { return c.subtotal }

// ShippingFee returns the shipping fee in minor currency units.
func (c CreateOrderCommand) ShippingFee() int64 { return c.shippingFee }

// Tax returns the tax amount in minor currency units.
func (c CreateOrderCommand) Tax() int64 { return c.tax }

// Total returns the order total in minor currency units.
func (c CreateOrderCommand) Total() int64 { return c.total }

// Address returns the shipping address.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

// PaymentMethod returns the payment method tag.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	c.number = number
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	c.paymentMethod = paymentMethod
	return nil
}
