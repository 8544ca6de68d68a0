package service

import (
	"context"
	"fmt"
	"time"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/storage"

	"github.com/google/uuid"
)

type IAttachmentService interface {
	// Upload stores the payload in object storage and records the
	// attachment row. The row exists before any message references it.
	Upload(ctx context.Context, userId uuid.UUID, fileName, contentType string, payload []byte) (*dto.AttachmentResponse, error)
}

type attachmentService struct {
	uowFactory unitofwork.RepositoryFactory
	store      storage.ObjectStore
}

func NewAttachmentService(uowFactory unitofwork.RepositoryFactory, store storage.ObjectStore) IAttachmentService {
	return &attachmentService{
		uowFactory: uowFactory,
		store:      store,
	}
}

func (s *attachmentService) Upload(ctx context.Context, userId uuid.UUID, fileName, contentType string, payload []byte) (*dto.AttachmentResponse, error) {
	id := uuid.New()
	// The store owns the upload directory prefix; keys are relative to it.
	key := fmt.Sprintf("%s/%s_%s", userId, id, storage.SanitizeFileName(fileName))

	url, err := s.store.Put(ctx, key, payload, contentType)
	if err != nil {
		return nil, err
	}

	attachment := &entity.Attachment{
		Id:          id,
		UserId:      userId,
		URL:         url,
		ContentType: contentType,
		CreatedAt:   time.Now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AttachmentRepository().Create(ctx, attachment); err != nil {
		return nil, err
	}

	return &dto.AttachmentResponse{
		Id:          attachment.Id,
		URL:         attachment.URL,
		ContentType: attachment.ContentType,
		CreatedAt:   attachment.CreatedAt,
	}, nil
}
