package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/events"
	"ai-chathub-be/pkg/llm/factory"
	"ai-chathub-be/pkg/storage"

	"github.com/google/uuid"
)

type IImageService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateImageRequest) ([]*dto.GeneratedFileResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GeneratedFileResponse, error)
}

type imageService struct {
	uowFactory        unitofwork.RepositoryFactory
	credentialService ICredentialService
	imageCatalog      *catalog.Catalog
	store             storage.ObjectStore
	publisherService  IPublisherService
	logger            logger.ILogger
}

func NewImageService(
	uowFactory unitofwork.RepositoryFactory,
	credentialService ICredentialService,
	imageCatalog *catalog.Catalog,
	store storage.ObjectStore,
	publisherService IPublisherService,
	log logger.ILogger,
) IImageService {
	return &imageService{
		uowFactory:        uowFactory,
		credentialService: credentialService,
		imageCatalog:      imageCatalog,
		store:             store,
		publisherService:  publisherService,
		logger:            log,
	}
}

func (s *imageService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateImageRequest) ([]*dto.GeneratedFileResponse, error) {
	creds, err := s.credentialService.UnsealedFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	// The credential rides on the provider instance for this call only.
	target, err := factory.Resolve(s.imageCatalog, req.Model, factory.ModelTypeProvider, "", creds)
	if err != nil {
		return nil, mapResolveError(err)
	}
	provider, err := factory.NewImageProvider(target)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count < 1 {
		count = 1
	}
	images, err := provider.GenerateImages(ctx, req.Prompt, count)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	result := make([]*dto.GeneratedFileResponse, 0, len(images))
	for _, img := range images {
		payload, err := base64.StdEncoding.DecodeString(img.Base64)
		if err != nil {
			return nil, fmt.Errorf("decode generated image: %w", err)
		}

		id := uuid.New()
		key := fmt.Sprintf("%s/generated_%s.png", userId, id)
		url, err := s.store.Put(ctx, key, payload, "image/png")
		if err != nil {
			return nil, err
		}

		file := &entity.GeneratedFile{
			Id:          id,
			UserId:      userId,
			URL:         url,
			Description: req.Prompt,
			CreatedAt:   time.Now(),
		}
		if err := uow.GeneratedFileRepository().Create(ctx, file); err != nil {
			return nil, err
		}

		result = append(result, toGeneratedFileResponse(file))
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeImageGenerated, map[string]interface{}{
		"user_id": userId.String(),
		"model":   req.Model,
		"count":   len(result),
	}))

	return result, nil
}

func (s *imageService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GeneratedFileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.GeneratedFileRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GeneratedFileResponse, 0, len(files))
	for _, f := range files {
		result = append(result, toGeneratedFileResponse(f))
	}
	return result, nil
}

func toGeneratedFileResponse(f *entity.GeneratedFile) *dto.GeneratedFileResponse {
	return &dto.GeneratedFileResponse{
		Id:          f.Id,
		URL:         f.URL,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}
