// Package audit records screening activity to a Kafka topic. Emission is
// best-effort: a full buffer drops the event rather than blocking the
// screening path.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const defaultBuffer = 256

// Publisher buffers events for the background worker.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithBuffer sets the inbox capacity.
func WithBuffer(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.inbox = make(chan Event, n)
		}
	}
}

// WithPublisherLogger sets the logger used for drop warnings.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

// NewPublisher constructs a publisher with a buffered inbox.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		inbox:  make(chan Event, defaultBuffer),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enqueues an event without blocking. Events are dropped with a warning
// when the inbox is full.
func (p *Publisher) Emit(ctx context.Context, e Event) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	select {
	case p.inbox <- e:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", e.Action,
			"subject", e.Subject,
		)
	}
}

// Inbox exposes the event stream for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
