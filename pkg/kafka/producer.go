package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solosolver-be/pkg/events"

	"github.com/segmentio/kafka-go"
)

// Producer sends events to a single Kafka topic, keyed by user so one
// customer's events stay ordered within a partition.
type Producer struct {
	writer *kafka.Writer
}

var _ events.Publisher = &Producer{}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, event events.Event) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func toMessage(event events.Event) (kafka.Message, error) {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	key, _ := event.Payload()["user_id"].(string)
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  event.Timestamp(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
		},
	}, nil
}
