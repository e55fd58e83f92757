package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"camplan/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Header keys on published messages.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

type KafkaPublisher struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, source string, log *logger.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by key so a group's events stay ordered
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaPublisher{
		writer: writer,
		source: source,
		log:    log,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	// Key by group so all events of one booking group land on the same
	// partition; fall back to the family for week-level events.
	key := event.GroupID
	if key == "" {
		key = event.FamilyID
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.New().String())},
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderSource, Value: []byte(p.source)},
			{Key: HeaderTimestamp, Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.log.Debug("Event published",
		"type", event.Type,
		"key", key,
		"topic", p.writer.Topic,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NoopPublisher) Close() error                                { return nil }
