package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

const publishBatchSize = 100

// PublishNotificationsCommandHandler relays staged outbox rows to the
// notification publisher. Each row is marked published only after a
// successful publish, so a crash between the two repeats the notification
// rather than losing it.
type PublishNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.NotificationPublisher
}

// NewPublishNotificationsCommandHandler creates a handler for the notification relay.
func NewPublishNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.NotificationPublisher,
) PublishNotificationsCommandHandler {
	return PublishNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle publishes one batch of unpublished notifications in insert order.
func (h PublishNotificationsCommandHandler) Handle(ctx context.Context, cmd PublishNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notifications, err := uow.NotificationOutbox().FetchUnpublished(ctx, publishBatchSize)
	if err != nil {
		return err
	}

	for _, notification := range notifications {
		if err = h.publisher.Publish(ctx, notification); err != nil {
			return err
		}
		if err = uow.NotificationOutbox().MarkPublished(ctx, notification.ID); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
