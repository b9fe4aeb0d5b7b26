// Package orderrepo provides data transfer objects and mapping functions for order
// persistence. This package implements the repository pattern for the order domain
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and tracking events live in their own tables so the tracking log
// can stay an append-only sequence of rows.
type OrderDTO struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Number        string             `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Subtotal      int64              `gorm:"not null"`
	ShippingFee   int64              `gorm:"not null"`
	Tax           int64              `gorm:"not null"`
	Total         int64              `gorm:"not null"`
	Address       AddressDTO         `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod string             `gorm:"type:varchar(32);not null"`
	Status        int                `gorm:"not null;index"`
	CreatedAt     time.Time          `gorm:"not null"`
	Items         []ItemDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Tracking      []TrackingEventDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping address within the order table.
type AddressDTO struct {
	FullName  string `gorm:"type:varchar(255);not null"`
	Phone     string `gorm:"type:varchar(32);not null"`
	Street    string `gorm:"type:varchar(255);not null"`
	Building  string `gorm:"type:varchar(64);not null"`
	Floor     string `gorm:"type:varchar(32)"`
	Apartment string `gorm:"type:varchar(32)"`
	Area      string `gorm:"type:varchar(128);not null"`
	City      string `gorm:"type:varchar(128);not null"`
	Landmark  string `gorm:"type:varchar(255)"`
}

// ItemDTO represents the database structure for persisting order line items.
// Pos preserves the original sequence of the line items.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Pos       int       `gorm:"not null"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
}

// TableName specifies the database table name for line item entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// TrackingEventDTO represents one row of an order's append-only tracking log.
// The unique (order_id, seq) index makes a double append impossible even if
// two writers were to slip past the status guard.
type TrackingEventDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_order_seq"`
	Seq        int       `gorm:"not null;uniqueIndex:idx_tracking_order_seq"`
	Status     int       `gorm:"not null"`
	Message    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for tracking event entities.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for pos, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			Pos:       pos,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	tracking := aggregate.Tracking()
	trackingDTOs := make([]TrackingEventDTO, 0, len(tracking))
	for seq, event := range tracking {
		trackingDTOs = append(trackingDTOs, trackingEventFromDomain(orderID, seq, event))
	}

	address := aggregate.Address()
	return OrderDTO{
		ID:          orderID,
		Number:      aggregate.Number(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Subtotal:    aggregate.Subtotal(),
		ShippingFee: aggregate.ShippingFee(),
		Tax:         aggregate.Tax(),
		Total:       aggregate.Total(),
		Address: AddressDTO{
			FullName:  address.FullName(),
			Phone:     address.Phone(),
			Street:    address.Street(),
			Building:  address.Building(),
			Floor:     address.Floor(),
			Apartment: address.Apartment(),
			Area:      address.Area(),
			City:      address.City(),
			Landmark:  address.Landmark(),
		},
		PaymentMethod: aggregate.PaymentMethod().String(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         itemDTOs,
		Tracking:      trackingDTOs,
	}
}

// trackingEventFromDomain converts a single tracking entry to its row form.
func trackingEventFromDomain(orderID uuid.UUID, seq int, event order.TrackingEvent) TrackingEventDTO {
	return TrackingEventDTO{
		OrderID:    orderID,
		Seq:        seq,
		Status:     int(event.Status()),
		Message:    event.Message(),
		OccurredAt: event.OccurredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items and the tracking
// log using RestoreOrder, which revalidates the audit-log invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Items, func(i, j int) bool { return dto.Items[i].Pos < dto.Items[j].Pos })
	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	sort.Slice(dto.Tracking, func(i, j int) bool { return dto.Tracking[i].Seq < dto.Tracking[j].Seq })
	tracking := make([]order.TrackingEvent, 0, len(dto.Tracking))
	for _, eventDTO := range dto.Tracking {
		event, eventErr := order.NewTrackingEvent(
			order.Status(eventDTO.Status), eventDTO.Message, eventDTO.OccurredAt)
		if eventErr != nil {
			return nil, eventErr
		}
		tracking = append(tracking, event)
	}

	address, err := order.NewAddress(
		dto.Address.FullName,
		dto.Address.Phone,
		dto.Address.Street,
		dto.Address.Building,
		dto.Address.Floor,
		dto.Address.Apartment,
		dto.Address.Area,
		dto.Address.City,
		dto.Address.Landmark,
	)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		items,
		dto.Subtotal, dto.ShippingFee, dto.Tax, dto.Total,
		address,
		paymentMethod,
		order.Status(dto.Status),
		tracking,
		dto.CreatedAt,
	)
}

// itemToDomain converts a line item DTO to its domain value object.
func itemToDomain(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(id, productID, dto.Name, dto.Quantity, dto.UnitPrice)
}
