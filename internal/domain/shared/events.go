package shared

import "time"

// DomainEvent is a fact recorded by an aggregate after a state change.
// Events are handed to an EventPublisher once the surrounding transaction commits.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields common to every domain event
type BaseEvent struct {
	Type      string    `json:"type"`
	Aggregate string    `json:"aggregateId"`
	Timestamp time.Time `json:"occurredAt"`
}

func NewBaseEvent(eventType, aggregateID string, at time.Time) BaseEvent {
	return BaseEvent{Type: eventType, Aggregate: aggregateID, Timestamp: at}
}

func (e BaseEvent) EventType() string { return e.Type }
func (e BaseEvent) AggregateID() string { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
