package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Topic is the Kafka topic audit events are produced to.
const Topic = "screening.audit"

// Producer is the slice of *kgo.Client the worker needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Worker drains the publisher inbox and produces events to Kafka. Produce
// failures are logged and the event is dropped; audit delivery never stalls
// screening.
type Worker struct {
	producer Producer
	inbox    <-chan Event
	logger   *slog.Logger
}

// NewWorker constructs a worker over the given producer and inbox.
func NewWorker(producer Producer, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{producer: producer, inbox: inbox, logger: logger}
}

// Run consumes events until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			w.produce(ctx, event)
		}
	}
}

func (w *Worker) produce(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		w.logger.ErrorContext(ctx, "marshal audit event", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: Topic,
		Key:   []byte(event.Action),
		Value: payload,
	}
	if err := w.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		w.logger.ErrorContext(ctx, "produce audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
