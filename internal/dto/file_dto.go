package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentResponse struct {
	Id          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GenerateImageRequest struct {
	Model  string `json:"model" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
	Count  int    `json:"count" validate:"omitempty,min=1,max=4"`
}

type GeneratedFileResponse struct {
	Id          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
