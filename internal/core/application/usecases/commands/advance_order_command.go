package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
)

// AdvanceOrderCommand represents a request to move an order to a target
// status. Whether the target is actually reachable from the order's current
// status is decided by the aggregate at handle time, not here.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	message string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order's status.
// The message is optional; when empty, the handler substitutes a default
// description of the transition for the tracking log.
func NewAdvanceOrderCommand(orderID kernel.UUID, target order.Status, message string) (AdvanceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID: orderID,
		target:  target,
		message: message,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// Message returns the optional tracking log message.
func (c AdvanceOrderCommand) Message() string {
	return c.message
}
