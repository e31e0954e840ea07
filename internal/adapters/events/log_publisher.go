package events

import (
	"context"
	"log/slog"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "domain event",
			"type", e.EventType(),
			"aggregate_id", e.AggregateID(),
			"occurred_at", e.OccurredAt(),
			"event", e,
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
