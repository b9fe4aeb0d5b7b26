package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCustomerOrdersQueryHandler retrieves a customer's order history from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern; an unknown customer simply yields an empty list.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListCustomerOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the customer's order summaries.
// Results are sorted by creation time, newest first.
func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]ListCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListCustomerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.total,
			COUNT(i.id) AS item_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.customer_id = ?
		GROUP BY o.id, o.number, o.status, o.total, o.created_at
		ORDER BY o.created_at DESC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary ListCustomerOrdersQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&summary.Number,
			&status,
			&summary.Total,
			&summary.ItemCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		summary.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summary.Status = order.Status(status).String()
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
