// Package outboxrepo persists notification outbox rows. Rows are written in
// the same transaction as the state change they describe and relayed to the
// messaging collaborator by a background job, giving at-least-once delivery.
package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationDTO represents one staged notification row.
type NotificationDTO struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	PreviousStatus string     `gorm:"type:varchar(32)"`
	Event          string     `gorm:"type:varchar(32);not null"`
	OccurredAt     time.Time  `gorm:"not null"`
	PublishedAt    *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox rows.
func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

// GormNotificationOutbox implements NotificationOutbox using GORM.
type GormNotificationOutbox struct {
	db *gorm.DB
}

// NewGormNotificationOutbox creates a new GORM notification outbox.
func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

// Add stages a notification row.
func (r *GormNotificationOutbox) Add(ctx context.Context, notification ports.Notification) error {
	if err := notification.OrderID.Validate(); err != nil {
		return err
	}
	if notification.Event == "" {
		return errs.NewValueIsRequiredError("event")
	}

	dto := NotificationDTO{
		OrderID:        notification.OrderID.Bytes(),
		PreviousStatus: notification.PreviousStatus,
		Event:          notification.Event,
		OccurredAt:     notification.OccurredAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FetchUnpublished returns up to limit staged notifications in insert order.
func (r *GormNotificationOutbox) FetchUnpublished(ctx context.Context, limit int) ([]ports.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	notifications := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, ports.Notification{
			ID:             dto.ID,
			OrderID:        orderID,
			PreviousStatus: dto.PreviousStatus,
			Event:          dto.Event,
			OccurredAt:     dto.OccurredAt,
		})
	}

	return notifications, nil
}

// MarkPublished records that the notification was handed to the collaborator.
func (r *GormNotificationOutbox) MarkPublished(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id).
		Update("published_at", &now)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id)
	}

	return nil
}
