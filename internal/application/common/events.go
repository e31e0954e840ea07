package common

import (
	"context"

	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// EventBuffer collects events raised inside a transaction so they can be
// published once it commits. The zero value is ready to use.
type EventBuffer struct {
	events []shared.DomainEvent
}

func (b *EventBuffer) Record(events ...shared.DomainEvent) {
	if b == nil {
		return
	}
	b.events = append(b.events, events...)
}

func (b *EventBuffer) Events() []shared.DomainEvent {
	if b == nil {
		return nil
	}
	return b.events
}

// Flush publishes the buffered events best effort and empties the buffer
func (b *EventBuffer) Flush(ctx context.Context, publisher EventPublisher) {
	if b == nil {
		return
	}
	PublishBestEffort(ctx, publisher, b.events...)
	b.events = nil
}

// PublishBestEffort hands events to the publisher and logs failures.
// Called after a successful commit; a publish failure never fails the operation.
func PublishBestEffort(ctx context.Context, publisher EventPublisher, events ...shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logging.LoggerFromContext(ctx).Warn("failed to publish domain events",
			"count", len(events),
			"first_type", events[0].EventType(),
			"error", err,
		)
	}
}
