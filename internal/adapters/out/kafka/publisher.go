// Package kafka publishes order notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// notificationMessage is the wire format for published notifications.
type notificationMessage struct {
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Event          string    `json:"event"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NotificationPublisher publishes order notifications via kafka-go.
// Messages are keyed by order ID so all notifications for one order land on
// the same partition, preserving their relative order for consumers.
type NotificationPublisher struct {
	writer *kafka.Writer
}

// NewNotificationPublisher creates a publisher writing to the given topic.
func NewNotificationPublisher(brokers []string, topic string) *NotificationPublisher {
	return &NotificationPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish sends one notification to the topic.
func (p *NotificationPublisher) Publish(ctx context.Context, notification ports.Notification) error {
	payload, err := json.Marshal(notificationMessage{
		OrderID:        notification.OrderID.String(),
		PreviousStatus: notification.PreviousStatus,
		Event:          notification.Event,
		OccurredAt:     notification.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.OrderID.String()),
		Value: payload,
	})
}

// Close releases the underlying writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
