package dto

import "time"

type SetCredentialRequest struct {
	ProviderId string `json:"provider_id" validate:"required"`
	Secret     string `json:"secret" validate:"required"`
}

// CredentialResponse never carries the secret itself, only a masked preview.
type CredentialResponse struct {
	ProviderId string    `json:"provider_id"`
	Preview    string    `json:"preview"`
	UpdatedAt  time.Time `json:"updated_at"`
}
