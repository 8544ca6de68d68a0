package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is one user's API key for one upstream provider. Secret holds
// the sealed (encrypted) value; plaintext never reaches this struct outside
// the credential service.
type Credential struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ProviderId string
	Secret     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	CustomProviderOllama     = "ollama"
	CustomProviderOpenRouter = "openrouter"
)

// CustomProvider is a user-registered backend outside the static catalog:
// either a self-hosted Ollama-compatible endpoint or an OpenRouter-routed
// model name.
type CustomProvider struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	Type                string
	Endpoint            string // ollama only
	Name                string // openrouter only: upstream model id
	SupportsAttachments bool
	Capabilities        map[string]interface{}
	CreatedAt           time.Time
}
