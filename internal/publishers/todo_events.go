package publishers

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
)

// messageWriter is the minimal kafka writer surface the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TodoEventsPublisher publishes todo mutation events to a Kafka topic,
// keyed by owner so one owner's events stay in one partition.
type TodoEventsPublisher struct {
	writer messageWriter
}

// New creates a publisher writing to the given broker address and topic.
func New(addr, topic string) *TodoEventsPublisher {
	return &TodoEventsPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(addr),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish sends a single todo event.
func (p *TodoEventsPublisher) Publish(ctx context.Context, event models.TodoEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: raw,
	})
	if err != nil {
		logger.Log.Errorw("failed to write todo event", "action", event.Action, "owner", event.UserID, "error", err)
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *TodoEventsPublisher) Close() error {
	return p.writer.Close()
}
