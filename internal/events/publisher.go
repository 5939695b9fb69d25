package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"marroking/internal/logger"
)

const syncTopic = "sync-events"

// SyncCompleted is emitted after each successful reconciliation run.
type SyncCompleted struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id"`
	Items     int       `json:"items"`
	Saved     int       `json:"saved"`
	Skipped   int       `json:"skipped"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher writes sync events to Kafka. With no brokers configured it is
// a no-op, so eventing stays optional.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers string, logger *logger.Logger) *Publisher {
	if brokers == "" {
		return &Publisher{logger: logger}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        syncTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	return &Publisher{writer: writer, logger: logger}
}

// PublishSyncCompleted emits the event; failures are logged, never fatal,
// since eventing is an observability concern, not part of the sync result.
func (p *Publisher) PublishSyncCompleted(ctx context.Context, event SyncCompleted) {
	if p.writer == nil {
		return
	}

	event.Type = "sync.completed"
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal sync event: %v", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RunID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to publish sync event: %v", err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
