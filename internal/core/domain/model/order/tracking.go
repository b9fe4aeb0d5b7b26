package order

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTrackingEventIsNotConstructed is returned when a TrackingEvent was not
// created through NewTrackingEvent.
var ErrTrackingEventIsNotConstructed = errors.New("TrackingEvent must be created via NewTrackingEvent constructor")

// TrackingEvent is an immutable, timestamped record of a status change.
// Events are appended to an order's tracking log and never modified or
// removed, forming the order's audit timeline.
type TrackingEvent struct {
	status     Status
	message    string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewTrackingEvent creates a tracking event for the given status.
// The status must be valid and the timestamp must be set; the message is
// free text shown to the customer and may be empty.
func NewTrackingEvent(status Status, message string, occurredAt time.Time) (TrackingEvent, error) {
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if occurredAt.IsZero() {
		return TrackingEvent{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return TrackingEvent{
		status:     status,
		message:    message,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through NewTrackingEvent.
func (e TrackingEvent) Validate() error {
	return e.guard.Validate(ErrTrackingEventIsNotConstructed)
}

// Status returns the order status this event recorded.
func (e TrackingEvent) Status() Status {
	return e.status
}

// Message returns the human-readable note attached to the event.
func (e TrackingEvent) Message() string {
	return e.message
}

// OccurredAt returns the timestamp at which the status change was recorded.
func (e TrackingEvent) OccurredAt() time.Time {
	return e.occurredAt
}
