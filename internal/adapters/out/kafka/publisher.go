// Package kafka publishes checkout events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"checkout/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderPlacedEvent is the value of an order.placed message. The message key
// is the invoice id.
type OrderPlacedEvent struct {
	Invoice   string    `json:"invoice"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderPlacedPublisher implements ports.OrderEventPublisher.
type OrderPlacedPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewOrderPlacedPublisher writes to topic on brokers with key-hash
// partitioning, so all messages of one invoice land on one partition.
func NewOrderPlacedPublisher(brokers []string, topic string) *OrderPlacedPublisher {
	return newOrderPlacedPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newOrderPlacedPublisher(w messageWriter) *OrderPlacedPublisher {
	return &OrderPlacedPublisher{writer: w, now: time.Now}
}

// PublishOrderPlaced writes one message for result.
func (p *OrderPlacedPublisher) PublishOrderPlaced(ctx context.Context, result *order.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(OrderPlacedEvent{
		Invoice:   result.Invoice().ID(),
		Total:     result.Pricing().Total.String(),
		CreatedAt: result.Invoice().CreatedAt(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(result.Invoice().ID()),
		Value: value,
		Time:  p.now().UTC(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("order.placed")},
		},
	})
}

// Close flushes pending writes.
func (p *OrderPlacedPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, *order.Result) error { return nil }
