package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrPublishNotificationsCommandIsNotConstructed = errors.New(
		"PublishNotificationsCommand must be created via NewPublishNotificationsCommand constructor",
	)
)

// PublishNotificationsCommand triggers one relay pass over the outbox.
type PublishNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewPublishNotificationsCommand creates a command to relay staged notifications.
func NewPublishNotificationsCommand() (PublishNotificationsCommand, error) {
	return PublishNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrPublishNotificationsCommandIsNotConstructed)
}
