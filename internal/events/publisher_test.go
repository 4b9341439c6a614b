package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func confirmedOrder() *domain.Order {
	return &domain.Order{
		ID:     "ord-1",
		Status: domain.OrderStatusPending,
		Total:  399.98,
		CustomerInfo: domain.CustomerInfo{
			Email: "john@example.com",
		},
	}
}

func TestOrderCreated_PublishesEvent(t *testing.T) {
	w := &mockWriter{}
	p := NewPublisherWithWriter(w)

	p.OrderCreated(context.Background(), confirmedOrder())

	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte("ord-1"), w.messages[0].Key)

	var event OrderCreatedEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &event))
	assert.Equal(t, "order.created", event.EventType)
	assert.Equal(t, "ord-1", event.OrderID)
	assert.Equal(t, 399.98, event.Total)
	assert.Equal(t, "pending", event.Status)
	assert.Equal(t, "john@example.com", event.Email)
	assert.NotEmpty(t, event.EventID)
}

func TestOrderCreated_WriteFailureIsSwallowed(t *testing.T) {
	w := &mockWriter{err: errors.New("broker unreachable")}
	p := NewPublisherWithWriter(w)

	// must not panic or propagate
	p.OrderCreated(context.Background(), confirmedOrder())
	assert.Empty(t, w.messages)
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	p.OrderCreated(context.Background(), confirmedOrder())
	p.Close()
}

func TestClose(t *testing.T) {
	w := &mockWriter{}
	p := NewPublisherWithWriter(w)
	p.Close()
	assert.True(t, w.closed)
}
