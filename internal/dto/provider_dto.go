package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterOllamaRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
}

type RegisterOpenRouterRequest struct {
	Name string `json:"name" validate:"required"`
}

type CustomProviderResponse struct {
	Id                  uuid.UUID `json:"id"`
	Type                string    `json:"type"`
	Endpoint            string    `json:"endpoint,omitempty"`
	Name                string    `json:"name,omitempty"`
	SupportsAttachments bool      `json:"supports_attachments"`
	CreatedAt           time.Time `json:"created_at"`
}

// ComposerModelResponse is one selectable model in the chat composer:
// either a catalog model the user holds a credential for, or one of the
// user's custom providers.
type ComposerModelResponse struct {
	Id                  string `json:"id"`
	Name                string `json:"name"`
	Provider            string `json:"provider"`
	ModelType           string `json:"model_type"`
	Endpoint            string `json:"endpoint,omitempty"`
	SupportsAttachments bool   `json:"supports_attachments"`
	Free                bool   `json:"free"`
	Experimental        bool   `json:"experimental"`
}
