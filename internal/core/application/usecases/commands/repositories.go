// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReturnRepoFactory provides access to the return request repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRequestRepository() ports.ReturnRequestRepository
	}

	// OutboxFactory provides access to the notification outbox within a transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// OrderUoW manages transactions for order-only operations.
	// The outbox rides along so status-change notifications commit atomically
	// with the transition that produced them.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReturnUoW manages transactions spanning orders and return requests.
	// Used by the return/exchange workflow, which reads the order, checks
	// overlap against existing requests, and inserts in one atomic unit.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		ReturnRepoFactory
		OutboxFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// OutboxUoW manages transactions for the notification relay.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
