package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

const defaultCancelMessage = "order cancelled by customer"

// CancelOrderCommandHandler handles order cancellation requests.
// Shares the guarded-update path with status advancement: the cancel only
// lands if the order is still in the status the handler read it at.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command and returns the cancelled order.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	message := cmd.Message()
	if message == "" {
		message = defaultCancelMessage
	}

	expected := aggregate.Status()
	event, err := aggregate.Cancel(message, time.Now().UTC())
	if err != nil {
		return aggregate, err
	}

	if err = uow.OrderRepository().UpdateStatusGuarded(ctx, aggregate, expected); err != nil {
		return nil, err
	}

	err = uow.NotificationOutbox().Add(ctx, ports.Notification{
		OrderID:        aggregate.ID(),
		PreviousStatus: expected.String(),
		Event:          order.Cancelled.String(),
		OccurredAt:     event.OccurredAt(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
