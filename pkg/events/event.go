package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes emitted by the chat domain.
const (
	TypeChatCreated       = "CHAT_CREATED"
	TypeChatDeleted       = "CHAT_DELETED"
	TypeMessagePersisted  = "MESSAGE_PERSISTED"
	TypeStreamStarted     = "STREAM_STARTED"
	TypeStreamCompleted   = "STREAM_COMPLETED"
	TypeStreamFailed      = "STREAM_FAILED"
	TypeCredentialSet     = "CREDENTIAL_SET"
	TypeCredentialDeleted = "CREDENTIAL_DELETED"
	TypeImageGenerated    = "IMAGE_GENERATED"
)

// BaseEvent is the standard Event implementation used across services.
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

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
