package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrResolveReturnRequestCommandIsNotConstructed = errors.New(
		"ResolveReturnRequestCommand must be created via NewResolveReturnRequestCommand constructor",
	)
)

// ResolveReturnRequestCommand represents an operator decision on a submitted
// return request: approve, reject, refund, or exchange.
type ResolveReturnRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	target    returnrequest.Status

	guard guard.ConstructorGuard
}

// NewResolveReturnRequestCommand creates a command to resolve a return request.
func NewResolveReturnRequestCommand(
	requestID kernel.UUID,
	target returnrequest.Status,
) (ResolveReturnRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), target.Validate()); err != nil {
		return ResolveReturnRequestCommand{}, err
	}

	return ResolveReturnRequestCommand{
		requestID: requestID,
		target:    target,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrResolveReturnRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to resolve.
func (c ResolveReturnRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Target returns the decided resolution status.
func (c ResolveReturnRequestCommand) Target() returnrequest.Status {
	return c.target
}
