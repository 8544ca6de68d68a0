package mapper

import (
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToModel(e *entity.Chat) *model.Chat {
	return &model.Chat{
		Id:        e.Id,
		UserId:    e.UserId,
		Model:     e.Model,
		ModelType: e.ModelType,
		Endpoint:  e.Endpoint,
		Name:      e.Name,
		Public:    e.Public,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) ChatToEntity(mod *model.Chat) *entity.Chat {
	return &entity.Chat{
		Id:        mod.Id,
		UserId:    mod.UserId,
		Model:     mod.Model,
		ModelType: mod.ModelType,
		Endpoint:  mod.Endpoint,
		Name:      mod.Name,
		Public:    mod.Public,
		CreatedAt: mod.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.Message) *model.Message {
	return &model.Message{
		Id:           e.Id,
		ChatId:       e.ChatId,
		UserId:       e.UserId,
		Role:         e.Role,
		Content:      e.Content,
		AttachmentId: e.AttachmentId,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(mod *model.Message) *entity.Message {
	return &entity.Message{
		Id:           mod.Id,
		ChatId:       mod.ChatId,
		UserId:       mod.UserId,
		Role:         mod.Role,
		Content:      mod.Content,
		AttachmentId: mod.AttachmentId,
		CreatedAt:    mod.CreatedAt,
	}
}

func (m *ChatMapper) CheckpointToModel(e *entity.StreamCheckpoint) *model.StreamCheckpoint {
	return &model.StreamCheckpoint{
		Id:        e.Id,
		ChatId:    e.ChatId,
		StreamId:  e.StreamId,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) CheckpointToEntity(mod *model.StreamCheckpoint) *entity.StreamCheckpoint {
	return &entity.StreamCheckpoint{
		Id:        mod.Id,
		ChatId:    mod.ChatId,
		StreamId:  mod.StreamId,
		CreatedAt: mod.CreatedAt,
	}
}
