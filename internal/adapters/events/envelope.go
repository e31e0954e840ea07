package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// Envelope is the wire format of a published domain event
type Envelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Source  string          `json:"source"`
	Subject string          `json:"subject"`
	Time    time.Time       `json:"time"`
	Data    json.RawMessage `json:"data"`
}

// NewEnvelope wraps a domain event. The subject is the aggregate id, which
// also keys the Kafka message so one aggregate's events stay ordered.
func NewEnvelope(source string, event shared.DomainEvent) (Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}
	return Envelope{
		ID:      uuid.NewString(),
		Type:    event.EventType(),
		Source:  source,
		Subject: event.AggregateID(),
		Time:    event.OccurredAt().UTC(),
		Data:    data,
	}, nil
}
