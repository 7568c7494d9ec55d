package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the lifecycle stage of a scoring run.
type EventType string

const (
	EventTypeCompleted  EventType = "completed"
	EventTypeFailed     EventType = "failed"
	EventTypeOverridden EventType = "overridden"
)

// EntityType represents the kind of entity an event is about.
type EntityType string

const (
	EntityTypeScore    EntityType = "score"
	EntityTypeDispatch EntityType = "dispatch"
)

// Event represents a WebSocket event message pushed to admin dashboard
// clients. Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "score.completed"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "score"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload.
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ScoreCompleted creates a score.completed event, pushed after the engine
// produces a ScoreResult for a user.
func ScoreCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeScore, payload)
}

// ScoreFailed creates a score.failed event, pushed when the engine surfaces
// InsufficientHistory for a user.
func ScoreFailed(payload interface{}) Event {
	return NewEvent(EventTypeFailed, EntityTypeScore, payload)
}

// ScoreOverridden creates a score.overridden event, pushed after a caller
// submits tagging overrides and the engine re-scores.
func ScoreOverridden(payload interface{}) Event {
	return NewEvent(EventTypeOverridden, EntityTypeScore, payload)
}

// DispatchCompleted creates a dispatch.completed event, pushed by the cron
// dispatcher after a rescoring sweep finishes.
func DispatchCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeDispatch, payload)
}
