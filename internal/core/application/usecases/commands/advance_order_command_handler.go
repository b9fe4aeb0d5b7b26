package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AdvanceOrderCommandHandler handles status transition requests.
// Applies the transition through the aggregate, persists it with a guard on
// the previously observed status, and stages a notification in the same
// transaction. Two concurrent transitions from the same status can both pass
// aggregate validation; the guarded update lets exactly one of them win.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for status transitions.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command and returns the updated order.
// A request for the order's current status is a no-op: the order is returned
// unchanged with ErrTransitionNoOp, and nothing is written.
func (h AdvanceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderCommand,
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

	expected := aggregate.Status()
	event, err := aggregate.Advance(cmd.Target(), transitionMessage(cmd.Target(), cmd.Message()), time.Now().UTC())
	if err != nil {
		return aggregate, err
	}

	if err = uow.OrderRepository().UpdateStatusGuarded(ctx, aggregate, expected); err != nil {
		return nil, err
	}

	err = uow.NotificationOutbox().Add(ctx, ports.Notification{
		OrderID:        aggregate.ID(),
		PreviousStatus: expected.String(),
		Event:          aggregate.Status().String(),
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

// transitionMessage picks the tracking log message for a transition,
// falling back to a generated description when the caller supplied none.
func transitionMessage(target order.Status, message string) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("order %s", target)
}
