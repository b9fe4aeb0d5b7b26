package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Notification describes a status change or an opened return request for the
// notification collaborator. PreviousStatus is empty for return request
// events; Event carries the new status name or the request kind.
type Notification struct {
	ID             int64
	OrderID        kernel.UUID
	PreviousStatus string
	Event          string
	OccurredAt     time.Time
}

// NotificationOutbox stages notifications in the same transaction as the state
// change that produced them, giving at-least-once delivery: a notification row
// is only removed from the unpublished set after the publisher confirmed it.
type NotificationOutbox interface {
	// Add stages a notification. Must run inside the transaction that commits
	// the state change it describes.
	Add(ctx context.Context, notification Notification) error

	// FetchUnpublished returns up to limit staged notifications in insert order.
	FetchUnpublished(ctx context.Context, limit int) ([]Notification, error)

	// MarkPublished records that the notification was handed to the collaborator.
	MarkPublished(ctx context.Context, id int64) error
}

// NotificationPublisher delivers notifications to the external messaging
// collaborator. Delivery is best effort; the relay job retries unpublished
// rows, so publishers may be invoked more than once per notification.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}
