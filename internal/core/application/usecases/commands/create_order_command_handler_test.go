package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress(
		"Alex Morgan", "+15550123", "22 Birch Rd", "7", "3", "12", "Old Town", "Springfield", "next to the bakery")
	require.NoError(t, err)
	return address
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Desk lamp", 1, 2500)
	require.NoError(t, err)
	return []order.Item{item}
}

func testCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "ORD-TEST-CMD-1", kernel.NewUUID(), testItems(t),
		2500, 300, 200, 3000,
		testAddress(t), order.PaymentCard,
	)
	require.NoError(t, err)
	return cmd
}

// testOrder creates a persisted-looking order in the given status.
// Timestamps are recent so delivered orders sit inside the return window.
func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-TEST-CMD-2", kernel.NewUUID(), testItems(t),
		2500, 300, 200, 3000,
		testAddress(t), order.PaymentCashOnDelivery,
		time.Now().UTC().Add(-48*time.Hour),
	)
	require.NoError(t, err)
	for o.Status() != status {
		next, ok := o.Status().Next()
		require.True(t, ok)
		_, err = o.Advance(next, "", o.CreatedAt().Add(time.Hour))
		require.NoError(t, err)
	}
	return o
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := testCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)

	added := repo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, order.Pending, added.Status())
	assert.True(t, added.ID().IsEqual(cmd.OrderID()))
	assert.Len(t, added.Tracking(), 1)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := testCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("duplicate number")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateOrderCommand_JoinsValidationErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "", kernel.NewUUID(), nil,
		0, 0, 0, 0,
		order.Address{}, order.PaymentMethod("gold"),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "number")
	assert.Contains(t, err.Error(), "items")
}
