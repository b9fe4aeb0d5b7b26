package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Creates new orders in pending status with their initial tracking entry.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// The aggregate constructor enforces the monetary invariant and non-empty
// items; violations surface as validation errors before anything is written.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Number(),
		cmd.CustomerID(),
		cmd.Items(),
		cmd.Subtotal(), cmd.ShippingFee(), cmd.Tax(), cmd.Total(),
		cmd.Address(),
		cmd.PaymentMethod(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
