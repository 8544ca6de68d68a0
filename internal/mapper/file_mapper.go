package mapper

import (
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) AttachmentToModel(e *entity.Attachment) *model.Attachment {
	return &model.Attachment{
		Id:          e.Id,
		ChatId:      e.ChatId,
		UserId:      e.UserId,
		MessageId:   e.MessageId,
		URL:         e.URL,
		ContentType: e.ContentType,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *FileMapper) AttachmentToEntity(mod *model.Attachment) *entity.Attachment {
	return &entity.Attachment{
		Id:          mod.Id,
		ChatId:      mod.ChatId,
		UserId:      mod.UserId,
		MessageId:   mod.MessageId,
		URL:         mod.URL,
		ContentType: mod.ContentType,
		CreatedAt:   mod.CreatedAt,
	}
}

func (m *FileMapper) GeneratedFileToModel(e *entity.GeneratedFile) *model.GeneratedFile {
	return &model.GeneratedFile{
		Id:          e.Id,
		UserId:      e.UserId,
		URL:         e.URL,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *FileMapper) GeneratedFileToEntity(mod *model.GeneratedFile) *entity.GeneratedFile {
	return &entity.GeneratedFile{
		Id:          mod.Id,
		UserId:      mod.UserId,
		URL:         mod.URL,
		Description: mod.Description,
		CreatedAt:   mod.CreatedAt,
	}
}
