package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"marroking/internal/config"
	"marroking/internal/events"
	"marroking/internal/logger"
)

// Worker tails the sync-events topic and logs reconciliation summaries.
type Worker struct {
	config *config.Config
	logger *logger.Logger
	reader *kafka.Reader
}

func New(cfg *config.Config, logger *logger.Logger) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "marroking-worker",
		Topic:          "sync-events",
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config: cfg,
		logger: logger,
		reader: reader,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for sync events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		var event events.SyncCompleted
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		w.logger.Info("Sync %s completed at %s: %d items, %d rows saved, %d skipped",
			event.RunID, event.Timestamp.Format(time.RFC3339),
			event.Items, event.Saved, event.Skipped)
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
