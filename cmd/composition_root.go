package cmd

import (
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory GormUnitOfWorkFactory
	publisher  *kafka.NotificationPublisher
}

type GormUnitOfWorkFactory = postgres.GormUnitOfWorkFactory

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher: kafka.NewNotificationPublisher(
			[]string{configs.KafkaHost},
			configs.KafkaNotificationTopic,
		),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenReturnRequestCommandHandler() commands.OpenReturnRequestCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenReturnRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveReturnRequestCommandHandler() commands.ResolveReturnRequestCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveReturnRequestCommandHandler(f)
}

func (c *CompositionRoot) CreatePublishNotificationsCommandHandler() commands.PublishNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishNotificationsCommandHandler(f, c.NotificationPublisher())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) NotificationPublisher() ports.NotificationPublisher {
	return c.publisher
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
