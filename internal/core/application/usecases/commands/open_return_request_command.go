package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrOpenReturnRequestCommandIsNotConstructed = errors.New(
		"OpenReturnRequestCommand must be created via NewOpenReturnRequestCommand constructor",
	)
)

// OpenReturnRequestCommand represents a request to open a return or exchange
// for items of a delivered order. Item selection, description, and attachment
// rules are deliberately left to the workflow itself so that precondition
// failures surface in their defined order against the loaded order.
type OpenReturnRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	orderID     kernel.UUID
	itemIDs     []kernel.UUID
	kind        returnrequest.Kind
	reason      returnrequest.Reason
	description string
	attachments []string

	guard guard.ConstructorGuard
}

// NewOpenReturnRequestCommand creates a command to open a return request.
// Only identities, kind, and reason are validated here.
func NewOpenReturnRequestCommand(
	requestID kernel.UUID,
	orderID kernel.UUID,
	itemIDs []kernel.UUID,
	kind returnrequest.Kind,
	reason returnrequest.Reason,
	description string,
	attachments []string,
) (OpenReturnRequestCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		orderID.Validate(),
		kind.Validate(),
		reason.Validate(),
	); err != nil {
		return OpenReturnRequestCommand{}, err
	}

	return OpenReturnRequestCommand{
		requestID:   requestID,
		orderID:     orderID,
		itemIDs:     append([]kernel.UUID(nil), itemIDs...),
		kind:        kind,
		reason:      reason,
		description: description,
		attachments: append([]string(nil), attachments...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrOpenReturnRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier for the new return request.
func (c OpenReturnRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// OrderID returns the identifier of the order the request targets.
func (c OpenReturnRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemIDs returns the selected line item identifiers.
func (c OpenReturnRequestCommand) ItemIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.itemIDs...)
}

// Kind returns whether a return or an exchange was requested.
func (c OpenReturnRequestCommand) Kind() returnrequest.Kind {
	return c.kind
}

// Reason returns the customer's stated reason.
func (c OpenReturnRequestCommand) Reason() returnrequest.Reason {
	return c.reason
}

// Description returns the free-text problem description.
func (c OpenReturnRequestCommand) Description() string {
	return c.description
}

// Attachments returns references to uploaded photo evidence.
func (c OpenReturnRequestCommand) Attachments() []string {
	return append([]string(nil), c.attachments...)
}
