package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a conversation owned by exactly one user. Model is opaque here;
// the dispatch layer interprets it according to ModelType at send time.
// For self-hosted models the endpoint is a structured field of its own, not
// encoded into the model string.
type Chat struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Model     string
	ModelType string
	Endpoint  string
	Name      string
	Public    bool
	CreatedAt time.Time
}

// Message is append-only; an assistant message is created only at stream
// completion.
type Message struct {
	Id           uuid.UUID
	ChatId       uuid.UUID
	UserId       uuid.UUID
	Role         string
	Content      string
	AttachmentId *uuid.UUID
	CreatedAt    time.Time
}

// StreamCheckpoint links a chat to an in-flight generation. It exists only
// while the stream is alive; deletion is idempotent and stale rows are
// expired by the janitor.
type StreamCheckpoint struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	StreamId  string
	CreatedAt time.Time
}
