package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// preloaded returns a query with line items and tracking events loaded in
// their stored sequence.
func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("pos ASC") }).
		Preload("Tracking", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") })
}

// Add saves a new order with its line items and initial tracking entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order by ID and takes a FOR UPDATE lock on its
// row. A concurrent GetForUpdate for the same order blocks until this
// transaction ends, so check-then-insert sequences against the order's
// dependent rows run one writer at a time. Must run inside a unit-of-work
// transaction; outside one the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-facing order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByCustomer retrieves all orders placed by a customer, newest first.
func (r *GormOrderRepository) GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.preloaded(ctx).
		Order("created_at DESC").
		Find(&dtos, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateStatusGuarded persists a validated transition with optimistic concurrency.
//
// The status column update is guarded by the status the caller validated
// against. When the guard misses, the order either no longer exists
// (ObjectNotFoundError) or another writer advanced it first
// (ConcurrencyConflictError); in both cases nothing is written and the
// winner's tracking entry is left intact. On success the aggregate's latest
// tracking entry is appended as a new row.
//
// Callers must run this inside a unit-of-work transaction so the status
// update and the tracking append commit atomically.
func (r *GormOrderRepository) UpdateStatusGuarded(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(expected)).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", aggregate.ID().Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	tracking := aggregate.Tracking()
	event := trackingEventFromDomain(aggregate.ID().Bytes(), len(tracking)-1, aggregate.LastTrackingEvent())
	return r.db.WithContext(ctx).Create(&event).Error
}
