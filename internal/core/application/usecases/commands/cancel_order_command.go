package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// CancelOrderCommand represents a request to cancel an order.
// Cancellation is only allowed while the order is pending or confirmed;
// that rule lives in the aggregate.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	message string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// The message is an optional reason recorded in the tracking log.
func NewCancelOrderCommand(orderID kernel.UUID, message string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		message: message,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Message returns the optional cancellation reason.
func (c CancelOrderCommand) Message() string {
	return c.message
}
