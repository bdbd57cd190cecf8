// Package kafka provides a Kafka-backed eventstream publisher. Events are
// keyed by owner id so one owner's operations stay ordered within a
// partition while different owners spread across the topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/motorlogic/garage/pkg/eventstream"
)

// Publisher publishes op events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// PublishOp writes one event, keyed by owner id.
func (p *Publisher) PublishOp(ctx context.Context, event *eventstream.OpRecordedEvent) error {
	if event == nil {
		return eventstream.ErrNilOpEvent
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding op event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Op.OwnerID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publishing op event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
