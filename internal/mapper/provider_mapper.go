package mapper

import (
	"encoding/json"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/model"

	"gorm.io/datatypes"
)

type ProviderMapper struct{}

func NewProviderMapper() *ProviderMapper {
	return &ProviderMapper{}
}

func (m *ProviderMapper) CredentialToModel(e *entity.Credential) *model.Credential {
	return &model.Credential{
		Id:         e.Id,
		UserId:     e.UserId,
		ProviderId: e.ProviderId,
		Secret:     e.Secret,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (m *ProviderMapper) CredentialToEntity(mod *model.Credential) *entity.Credential {
	return &entity.Credential{
		Id:         mod.Id,
		UserId:     mod.UserId,
		ProviderId: mod.ProviderId,
		Secret:     mod.Secret,
		CreatedAt:  mod.CreatedAt,
		UpdatedAt:  mod.UpdatedAt,
	}
}

func (m *ProviderMapper) CustomProviderToModel(e *entity.CustomProvider) *model.CustomProvider {
	var caps datatypes.JSON
	if e.Capabilities != nil {
		if raw, err := json.Marshal(e.Capabilities); err == nil {
			caps = raw
		}
	}
	return &model.CustomProvider{
		Id:                  e.Id,
		UserId:              e.UserId,
		Type:                e.Type,
		Endpoint:            e.Endpoint,
		Name:                e.Name,
		SupportsAttachments: e.SupportsAttachments,
		Capabilities:        caps,
		CreatedAt:           e.CreatedAt,
	}
}

func (m *ProviderMapper) CustomProviderToEntity(mod *model.CustomProvider) *entity.CustomProvider {
	var caps map[string]interface{}
	if len(mod.Capabilities) > 0 {
		_ = json.Unmarshal(mod.Capabilities, &caps)
	}
	return &entity.CustomProvider{
		Id:                  mod.Id,
		UserId:              mod.UserId,
		Type:                mod.Type,
		Endpoint:            mod.Endpoint,
		Name:                mod.Name,
		SupportsAttachments: mod.SupportsAttachments,
		Capabilities:        caps,
		CreatedAt:           mod.CreatedAt,
	}
}
