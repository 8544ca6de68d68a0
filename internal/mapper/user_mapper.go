package mapper

import (
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(e *entity.User) *model.User {
	return &model.User{
		Id:        e.Id,
		Subject:   e.Subject,
		Email:     e.Email,
		FullName:  e.FullName,
		AvatarURL: e.AvatarURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *UserMapper) ToEntity(mod *model.User) *entity.User {
	return &entity.User{
		Id:        mod.Id,
		Subject:   mod.Subject,
		Email:     mod.Email,
		FullName:  mod.FullName,
		AvatarURL: mod.AvatarURL,
		CreatedAt: mod.CreatedAt,
		UpdatedAt: mod.UpdatedAt,
	}
}
