package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returnrequest"
)

// ReturnRequestRepository defines the persistence contract for return/exchange
// requests.
type ReturnRequestRepository interface {
	// Add persists a new return request. Callers must check item overlap via
	// GetUnresolvedByOrder inside the same transaction before inserting.
	Add(ctx context.Context, aggregate *returnrequest.ReturnRequest) error

	// Get retrieves a return request by its unique identifier.
	// Returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*returnrequest.ReturnRequest, error)

	// GetUnresolvedByOrder retrieves all requests for an order that have not
	// reached a resolution status yet.
	GetUnresolvedByOrder(ctx context.Context, orderID kernel.UUID) ([]*returnrequest.ReturnRequest, error)

	// GetAllByOrder retrieves all requests ever opened for an order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*returnrequest.ReturnRequest, error)

	// Update persists a status resolution recorded on an existing request.
	Update(ctx context.Context, aggregate *returnrequest.ReturnRequest) error
}
