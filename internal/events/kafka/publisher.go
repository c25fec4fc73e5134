// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

const writeTimeout = 5 * time.Second

// writer is the subset of *kafka.Writer used by Publisher.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ model.EventPublisher = (*Publisher)(nil)

// Publisher writes JSON encoded events keyed by user id.
type Publisher struct {
	w     writer
	topic string
	now   func() time.Time
}

// NewPublisher creates a Publisher writing to topic on brokers. Writes are
// batched in the background and delivery failures are reported to logger.
func NewPublisher(brokers []string, topic string, logger *logger.Logger) *Publisher {
	return NewPublisherWithWriter(newWriter(brokers, topic, logger), topic)
}

func newWriter(brokers []string, topic string, logger *logger.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(msgs []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, msg := range msgs {
				logger.Error("Event publisher: failed to deliver event",
					"topic", topic,
					"type", headerValue(msg, "type"),
					"key", string(msg.Key),
					"error", err)
			}
		},
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// NewPublisherWithWriter allows injecting a fake writer (used in tests).
func NewPublisherWithWriter(w writer, topic string) *Publisher {
	return &Publisher{w: w, topic: topic, now: time.Now}
}

// Publish hands the event to the writer. With the default async writer it
// returns once the message is queued; delivery errors surface through the
// writer's completion callback.
func (p *Publisher) Publish(ctx context.Context, event model.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event to %s: %w", event.Type, p.topic, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	return p.w.Close()
}
