package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
		"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
	)
)

// ListCustomerOrdersQuery retrieves summaries of a customer's orders,
// newest first.
//
// Example:
//
//	query, err := NewListCustomerOrdersQuery(customerID)
//	if err != nil {
//	    return fmt.Errorf("invalid customer ID: %w", err)
//	}
//
//	handler := NewListCustomerOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type ListCustomerOrdersQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery creates a query for a customer's order history.
func NewListCustomerOrdersQuery(customerID kernel.UUID) (ListCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}

	return ListCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the identifier of the customer.
func (q ListCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// ListCustomerOrdersQueryResponse is a compact order summary for history views.
type ListCustomerOrdersQueryResponse struct {
	ID        kernel.UUID
	Number    string
	Status    string
	Total     int64
	ItemCount int
	CreatedAt time.Time
}
