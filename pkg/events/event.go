package events

import "time"

// Event is what crosses the NATS bridge between the generation worker and the
// notification hub.
type Event interface {
	// EventType returns the code consumers dispatch on,
	// e.g. "GENERATION_COMPLETED".
	EventType() string

	// Payload returns the event data as pushed to websocket clients.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by all in-tree publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
