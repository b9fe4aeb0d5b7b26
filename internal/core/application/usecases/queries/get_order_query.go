// Package queries contains read operations in the CQRS architecture.
// Query handlers read directly from the database with raw SQL, bypassing
// the aggregates and their invariant checks for performance.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its items and full tracking log.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Number        string
	CustomerID    kernel.UUID
	Status        string
	Subtotal      int64
	ShippingFee   int64
	Tax           int64
	Total         int64
	PaymentMethod string
	Address       AddressResponse
	Items         []ItemResponse
	Tracking      []TrackingEventResponse
	CreatedAt     time.Time
}

// AddressResponse is the shipping address read model.
type AddressResponse struct {
	FullName  string
	Phone     string
	Street    string
	Building  string
	Floor     string
	Apartment string
	Area      string
	City      string
	Landmark  string
}

// ItemResponse is the line item read model.
type ItemResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice int64
}

// TrackingEventResponse is one tracking log entry in the read model.
type TrackingEventResponse struct {
	Status     string
	Message    string
	OccurredAt time.Time
}
