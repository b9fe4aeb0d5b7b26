package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := testOrder(t, order.Pending)
	cmd, err := commands.NewCancelOrderCommand(existing.ID(), "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("UpdateStatusGuarded", mock.Anything, existing, order.Pending).Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Add", mock.Anything, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Equal(t, "order cancelled by customer", cancelled.LastTrackingEvent().Message())

	notification := outbox.Calls[0].Arguments.Get(1).(ports.Notification)
	assert.Equal(t, "cancelled", notification.Event)
	assert.Equal(t, "pending", notification.PreviousStatus)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CustomMessage(t *testing.T) {
	ctx := t.Context()
	existing := testOrder(t, order.Confirmed)
	cmd, err := commands.NewCancelOrderCommand(existing.ID(), "ordered twice by mistake")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("NotificationOutbox").Return(outbox)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil)
	repo.On("UpdateStatusGuarded", mock.Anything, existing, order.Confirmed).Return(nil)
	outbox.On("Add", mock.Anything, mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ordered twice by mistake", cancelled.LastTrackingEvent().Message())
}

func TestCancelOrderCommandHandler_Handle_RejectedAfterPreparation(t *testing.T) {
	ctx := t.Context()

	for _, status := range []order.Status{order.Preparing, order.Shipping, order.Delivered} {
		existing := testOrder(t, status)
		cmd, err := commands.NewCancelOrderCommand(existing.ID(), "")
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("OrderRepository").Return(repo)
		uow.On("Rollback", ctx).Return(nil)
		repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewCancelOrderCommandHandler(factory)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrInvalidTransition, status.String())
		assert.Equal(t, status, existing.Status())
		repo.AssertNotCalled(t, "UpdateStatusGuarded", mock.Anything, mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	}
}
