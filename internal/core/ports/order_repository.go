package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the single writer of order state; all mutation goes through
// Add and UpdateStatusGuarded.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items and
	// initial tracking entry. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its full tracking log. Returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order like Get, but locks its row until the
	// surrounding transaction ends. Serializes writers whose validity depends
	// on a stable view of the order and its dependent rows, such as the
	// overlap check in the return workflow.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-facing order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllByCustomer retrieves all orders placed by a customer, newest first.
	// Served by an indexed query; never loads the full order set.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// UpdateStatusGuarded persists a validated transition with optimistic
	// concurrency: the status row update is guarded by expected, the status the
	// caller validated the transition against. If another writer changed the
	// status in between, no write happens and errs.ErrConcurrencyConflict is
	// returned; the caller must re-read and re-validate. On success the
	// aggregate's latest tracking entry is appended in the same transaction.
	UpdateStatusGuarded(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
