package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOpenReturnRequestCommand(t *testing.T, o *order.Order) commands.OpenReturnRequestCommand {
	t.Helper()
	cmd, err := commands.NewOpenReturnRequestCommand(
		kernel.NewUUID(), o.ID(), []kernel.UUID{o.Items()[0].ID()},
		returnrequest.KindReturn, returnrequest.ReasonDefective,
		"switch broke on first use", nil,
	)
	require.NoError(t, err)
	return cmd
}

func TestOpenReturnRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	delivered := testOrder(t, order.Delivered)
	cmd := testOpenReturnRequestCommand(t, delivered)

	orderRepo := new(MockOrderRepository)
	returnRepo := new(MockReturnRequestRepository)
	outbox := new(MockNotificationOutbox)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, delivered.ID()).Return(delivered, nil).Once(),
		uow.On("ReturnRequestRepository").Return(returnRepo).Once(),
		returnRepo.On("GetUnresolvedByOrder", mock.Anything, delivered.ID()).
			Return([]*returnrequest.ReturnRequest{}, nil).Once(),
		uow.On("ReturnRequestRepository").Return(returnRepo).Once(),
		returnRepo.On("Add", mock.Anything, mock.AnythingOfType("*returnrequest.ReturnRequest")).Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Add", mock.Anything, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOpenReturnRequestCommandHandler(factory)
	request, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, returnrequest.Submitted, request.Status())
	assert.True(t, request.OrderID().IsEqual(delivered.ID()))

	notification := outbox.Calls[0].Arguments.Get(1).(ports.Notification)
	assert.Equal(t, "return", notification.Event)
	assert.Empty(t, notification.PreviousStatus)

	orderRepo.AssertExpectations(t)
	returnRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestOpenReturnRequestCommandHandler_Handle_OverlappingItems(t *testing.T) {
	ctx := t.Context()
	delivered := testOrder(t, order.Delivered)
	cmd := testOpenReturnRequestCommand(t, delivered)

	deliveredAt, ok := delivered.DeliveredAt()
	require.True(t, ok)
	existing, err := returnrequest.Open(
		delivered, kernel.NewUUID(), []kernel.UUID{delivered.Items()[0].ID()},
		returnrequest.KindExchange, returnrequest.ReasonSizeIssue,
		"too small", nil,
		returnrequest.ReturnWindow, deliveredAt.Add(time.Hour),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	returnRepo := new(MockReturnRequestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ReturnRequestRepository").Return(returnRepo)
	uow.On("Rollback", ctx).Return(nil)
	orderRepo.On("GetForUpdate", mock.Anything, delivered.ID()).Return(delivered, nil)
	returnRepo.On("GetUnresolvedByOrder", mock.Anything, delivered.ID()).
		Return([]*returnrequest.ReturnRequest{existing}, nil)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewOpenReturnRequestCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, returnrequest.ErrItemsAlreadyRequested)
	returnRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestOpenReturnRequestCommandHandler_Handle_NotEligible(t *testing.T) {
	ctx := t.Context()
	shipping := testOrder(t, order.Shipping)
	cmd := testOpenReturnRequestCommand(t, shipping)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)
	orderRepo.On("GetForUpdate", mock.Anything, shipping.ID()).Return(shipping, nil)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewOpenReturnRequestCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, returnrequest.ErrNotEligible)
	uow.AssertNotCalled(t, "ReturnRequestRepository")
}
