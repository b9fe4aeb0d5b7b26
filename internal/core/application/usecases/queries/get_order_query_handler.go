package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve an order with items and tracking log.
// Tracking entries are returned in log order, line items in their original
// sequence. Returns an ObjectNotFoundError for an unknown order ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.fetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Items, err = h.fetchItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Tracking, err = h.fetchTracking(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) fetchOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	var response GetOrderQueryResponse
	var id, customerID uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			status,
			subtotal,
			shipping_fee,
			tax,
			total,
			payment_method,
			shipping_full_name,
			shipping_phone,
			shipping_street,
			shipping_building,
			shipping_floor,
			shipping_apartment,
			shipping_area,
			shipping_city,
			shipping_landmark,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&response.Number,
		&customerID,
		&status,
		&response.Subtotal,
		&response.ShippingFee,
		&response.Tax,
		&response.Total,
		&response.PaymentMethod,
		&response.Address.FullName,
		&response.Address.Phone,
		&response.Address.Street,
		&response.Address.Building,
		&response.Address.Floor,
		&response.Address.Apartment,
		&response.Address.Area,
		&response.Address.City,
		&response.Address.Landmark,
		&response.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Status = order.Status(status).String()

	return response, nil
}

func (h GetOrderQueryHandler) fetchItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]ItemResponse, error) {
	items := make([]ItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY pos
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item ItemResponse
		var id, productID uuid.UUID

		err = rows.Scan(
			&id,
			&productID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		item.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) fetchTracking(
	ctx context.Context,
	orderID kernel.UUID,
) ([]TrackingEventResponse, error) {
	tracking := make([]TrackingEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			message,
			occurred_at
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event TrackingEventResponse
		var status int

		err = rows.Scan(
			&status,
			&event.Message,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		event.Status = order.Status(status).String()
		tracking = append(tracking, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tracking, nil
}
