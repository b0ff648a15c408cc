package events

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/example/bala-store/internal/logging"
)

// Handler processes one consumed record.
type Handler func(ctx context.Context, envelope Envelope) error

// Consumer reads order event envelopes from the topic as part of a consumer
// group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader}
}

// Consume reads until the context is cancelled. Malformed records and
// handler failures are logged and skipped; the loop only stops on
// cancellation.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	log := logging.Component("events")
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("could not read message")
			continue
		}

		envelope, err := DecodeEnvelope(msg.Value)
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed record")
			continue
		}

		if err := handler(ctx, envelope); err != nil {
			log.Warn().Err(err).
				Str("type", envelope.Type).
				Str("order_id", envelope.OrderID).
				Msg("handler failed")
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
