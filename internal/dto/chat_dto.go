package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartChatRequest struct {
	Model        string     `json:"model" validate:"required"`
	ModelType    string     `json:"model_type" validate:"omitempty,oneof=provider openrouter ollama"`
	Endpoint     string     `json:"endpoint,omitempty"`
	Content      string     `json:"content" validate:"required"`
	AttachmentId *uuid.UUID `json:"attachment_id,omitempty"`
}

type StartChatResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ChatSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	ModelType string    `json:"model_type"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Id            uuid.UUID `json:"id"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	AttachmentURL *string   `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Content      string     `json:"content" validate:"required"`
	AttachmentId *uuid.UUID `json:"attachment_id,omitempty"`
}

type RenameChatRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type SetVisibilityRequest struct {
	Public *bool `json:"public" validate:"required"`
}

// SharedChatResponse is the public read of a shared chat. Owner is true only
// when the authenticated caller owns the chat, so the client can redirect to
// the editable view instead.
type SharedChatResponse struct {
	Id       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Owner    bool              `json:"owner"`
	Messages []MessageResponse `json:"messages"`
}
