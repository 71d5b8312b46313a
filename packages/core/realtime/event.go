package realtime

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventRosterUpdated     EventType = "roster_updated"
	EventRotationGenerated EventType = "rotation_generated"
	EventGameCompleted     EventType = "game_completed"
	EventSessionClosed     EventType = "session_closed"
)

// Event is a session scoped notification pushed to connected clients.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

func NewEvent(t EventType, sessionID string, payload any) Event {
	return Event{Type: t, SessionID: sessionID, Payload: payload, At: time.Now().UTC()}
}

// Publisher fans events out to everyone watching a session.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

func encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}
