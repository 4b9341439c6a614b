// Package events publishes order lifecycle events to Kafka. Publishing is
// best-effort: a broker outage never fails the order path.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

const Topic = "order-events"

// Writer is the slice of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderCreatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher struct {
	writer Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

// NewPublisherWithWriter is for tests.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// OrderCreated publishes an order.created event. A nil publisher (events
// disabled) is a no-op.
func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) {
	if p == nil {
		return
	}

	event := OrderCreatedEvent{
		EventID:   uuid.NewString(),
		EventType: "order.created",
		OrderID:   order.ID,
		Total:     order.Total,
		Status:    string(order.Status),
		Email:     order.CustomerInfo.Email,
		CreatedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal order event: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("failed to publish event for order %s: %v", order.ID, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}
