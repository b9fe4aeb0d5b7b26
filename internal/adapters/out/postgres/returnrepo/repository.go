package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnRequestRepository implements ReturnRequestRepository using GORM.
type GormReturnRequestRepository struct {
	db *gorm.DB
}

// NewGormReturnRequestRepository creates a new GORM return request repository.
func NewGormReturnRequestRepository(db *gorm.DB) *GormReturnRequestRepository {
	return &GormReturnRequestRepository{db: db}
}

// preloaded returns a query with selected items and attachments loaded.
func (r *GormReturnRequestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("pos ASC") })
}

// Add saves a new return request with its item references and attachments.
func (r *GormReturnRequestRepository) Add(ctx context.Context, aggregate *returnrequest.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a return request by ID.
func (r *GormReturnRequestRepository) Get(ctx context.Context, id kernel.UUID) (*returnrequest.ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnRequestDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnRequest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnresolvedByOrder retrieves all requests for an order still awaiting
// resolution. Used to reject overlapping item selections before insert.
func (r *GormReturnRequestRepository) GetUnresolvedByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*returnrequest.ReturnRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnRequestDTO
	if err := r.preloaded(ctx).
		Find(&dtos, "order_id = ? AND status = ?", orderID.Bytes(), int(returnrequest.Submitted)).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllByOrder retrieves all requests ever opened for an order.
func (r *GormReturnRequestRepository) GetAllByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*returnrequest.ReturnRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnRequestDTO
	if err := r.preloaded(ctx).
		Order("created_at ASC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// Update persists a status resolution recorded on an existing request.
// Items, attachments, and descriptive fields are immutable after submit,
// so only the status column is written.
func (r *GormReturnRequestRepository) Update(ctx context.Context, aggregate *returnrequest.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ReturnRequestDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("returnRequest", aggregate.ID().String())
	}

	return nil
}

func (r *GormReturnRequestRepository) toDomainAll(dtos []ReturnRequestDTO) ([]*returnrequest.ReturnRequest, error) {
	requests := make([]*returnrequest.ReturnRequest, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
