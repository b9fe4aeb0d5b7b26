// Package returnrepo provides data transfer objects and mapping functions for
// return/exchange request persistence.
package returnrepo

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returnrequest"

	"github.com/google/uuid"
)

// ReturnRequestDTO represents the database structure for persisting return
// requests. Selected items and attachments live in child tables.
type ReturnRequestDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"type:varchar(16);not null"`
	Reason      string          `gorm:"type:varchar(32);not null"`
	Description string          `gorm:"type:text;not null"`
	Status      int             `gorm:"not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	Items       []ReturnItemDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Attachments []AttachmentDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return request entities.
func (ReturnRequestDTO) TableName() string {
	return "return_requests"
}

// ReturnItemDTO links a return request to one of the order's line items.
type ReturnItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the database table name for return request items.
func (ReturnItemDTO) TableName() string {
	return "return_request_items"
}

// AttachmentDTO stores one image reference attached to a return request.
type AttachmentDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	Pos       int       `gorm:"not null"`
	URL       string    `gorm:"type:varchar(512);not null"`
}

// TableName specifies the database table name for return request attachments.
func (AttachmentDTO) TableName() string {
	return "return_request_attachments"
}

// fromDomain converts a return request aggregate to its database representation.
func fromDomain(aggregate *returnrequest.ReturnRequest) ReturnRequestDTO {
	requestID := aggregate.ID().Bytes()

	itemIDs := aggregate.ItemIDs()
	items := make([]ReturnItemDTO, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		items = append(items, ReturnItemDTO{
			RequestID: requestID,
			ItemID:    itemID.Bytes(),
		})
	}

	urls := aggregate.Attachments()
	attachments := make([]AttachmentDTO, 0, len(urls))
	for pos, url := range urls {
		attachments = append(attachments, AttachmentDTO{
			RequestID: requestID,
			Pos:       pos,
			URL:       url,
		})
	}

	return ReturnRequestDTO{
		ID:          requestID,
		OrderID:     aggregate.OrderID().Bytes(),
		Kind:        aggregate.Kind().String(),
		Reason:      aggregate.Reason().String(),
		Description: aggregate.Description(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		Items:       items,
		Attachments: attachments,
	}
}

// toDomain converts a database DTO to a return request aggregate.
func toDomain(dto ReturnRequestDTO) (*returnrequest.ReturnRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	itemIDs := make([]kernel.UUID, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		itemIDs = append(itemIDs, itemID)
	}

	sort.Slice(dto.Attachments, func(i, j int) bool { return dto.Attachments[i].Pos < dto.Attachments[j].Pos })
	attachments := make([]string, 0, len(dto.Attachments))
	for _, attachmentDTO := range dto.Attachments {
		attachments = append(attachments, attachmentDTO.URL)
	}

	kind, err := returnrequest.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	reason, err := returnrequest.ParseReason(dto.Reason)
	if err != nil {
		return nil, err
	}

	return returnrequest.RestoreReturnRequest(
		id,
		orderID,
		itemIDs,
		kind,
		reason,
		dto.Description,
		attachments,
		returnrequest.Status(dto.Status),
		dto.CreatedAt,
	)
}
