package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatusGuarded(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

type MockReturnRequestRepository struct{ mock.Mock }

func (m *MockReturnRequestRepository) Add(ctx context.Context, aggregate *returnrequest.ReturnRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReturnRequestRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*returnrequest.ReturnRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returnrequest.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepository) GetUnresolvedByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*returnrequest.ReturnRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returnrequest.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*returnrequest.ReturnRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returnrequest.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepository) Update(ctx context.Context, aggregate *returnrequest.ReturnRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockNotificationOutbox struct{ mock.Mock }

func (m *MockNotificationOutbox) Add(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationOutbox) FetchUnpublished(ctx context.Context, limit int) ([]ports.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Notification), args.Error(1)
}

func (m *MockNotificationOutbox) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReturnRequestRepository() ports.ReturnRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRequestRepository)
}

func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}
