// Package events publishes order lifecycle records to Kafka so downstream
// consumers (notification senders, reporting) can react without being wired
// into the request path. Publishing is best-effort: a broker failure is
// logged and never fails the user operation.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/logging"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderPlaced           = "order.placed"
	TypeOrderStatusChanged    = "order.status_changed"
	TypeOrderPaymentConfirmed = "order.payment_confirmed"
)

// Envelope is the wire shape of a published record.
type Envelope struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"order_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// DecodeEnvelope parses a consumed record.
func DecodeEnvelope(value []byte) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return Envelope{}, err
	}
	return envelope, nil
}

// Order decodes the order snapshot carried by an order.placed envelope.
func (e Envelope) Order() (domain.Order, error) {
	var order domain.Order
	if err := json.Unmarshal(e.Data, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Publisher writes order events to a Kafka topic. A nil Publisher is valid
// and drops everything, so callers never have to branch on whether the
// event stream is configured.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// OrderPlaced publishes the full order snapshot.
func (p *Publisher) OrderPlaced(ctx context.Context, order domain.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	p.publish(ctx, order.ID, Envelope{
		Type:       TypeOrderPlaced,
		OrderID:    order.ID,
		OccurredAt: time.Now(),
		Data:       data,
	})
}

// OrderStatusChanged publishes a status transition.
func (p *Publisher) OrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) {
	data, _ := json.Marshal(map[string]string{"status": string(status)})
	p.publish(ctx, orderID, Envelope{
		Type:       TypeOrderStatusChanged,
		OrderID:    orderID,
		OccurredAt: time.Now(),
		Data:       data,
	})
}

// OrderPaymentConfirmed publishes a payment confirmation.
func (p *Publisher) OrderPaymentConfirmed(ctx context.Context, orderID string) {
	p.publish(ctx, orderID, Envelope{
		Type:       TypeOrderPaymentConfirmed,
		OrderID:    orderID,
		OccurredAt: time.Now(),
	})
}

func (p *Publisher) publish(ctx context.Context, key string, envelope Envelope) {
	if p == nil || p.writer == nil {
		return
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		logging.Component("events").Warn().Err(err).
			Str("type", envelope.Type).
			Str("order_id", envelope.OrderID).
			Msg("could not publish order event")
	}
}
