package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/catalog"
	"ai-chathub-be/pkg/llm/factory"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IProviderService interface {
	RegisterOllama(ctx context.Context, userId uuid.UUID, req *dto.RegisterOllamaRequest) (*dto.CustomProviderResponse, error)
	RegisterOpenRouter(ctx context.Context, userId uuid.UUID, req *dto.RegisterOpenRouterRequest) (*dto.CustomProviderResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.CustomProviderResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	DeleteOpenRouterByName(ctx context.Context, userId uuid.UUID, name string) error
	// ComposerModels lists everything the user can start a chat with:
	// catalog models backed by a credential, plus custom providers.
	ComposerModels(ctx context.Context, userId uuid.UUID) ([]*dto.ComposerModelResponse, error)
}

type providerService struct {
	uowFactory        unitofwork.RepositoryFactory
	credentialService ICredentialService
	chatCatalog       *catalog.Catalog
	probeCache        *gocache.Cache
	httpClient        *http.Client
	logger            logger.ILogger
}

func NewProviderService(
	uowFactory unitofwork.RepositoryFactory,
	credentialService ICredentialService,
	chatCatalog *catalog.Catalog,
	log logger.ILogger,
) IProviderService {
	return &providerService{
		uowFactory:        uowFactory,
		credentialService: credentialService,
		chatCatalog:       chatCatalog,
		probeCache:        gocache.New(5*time.Minute, 10*time.Minute),
		httpClient:        &http.Client{Timeout: 10 * time.Second},
		logger:            log,
	}
}

func (s *providerService) RegisterOllama(ctx context.Context, userId uuid.UUID, req *dto.RegisterOllamaRequest) (*dto.CustomProviderResponse, error) {
	endpoint := strings.TrimRight(req.Endpoint, "/")
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, serverutils.NewBadRequest("Invalid endpoint URL")
	}

	if err := s.probeOllama(ctx, endpoint); err != nil {
		return nil, serverutils.NewUnprocessable(fmt.Sprintf("Endpoint is not a reachable Ollama host: %v", err))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.CustomProviderRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProviderType{Type: entity.CustomProviderOllama},
		specification.ByEndpoint{Endpoint: endpoint},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("Endpoint already registered")
	}

	provider := &entity.CustomProvider{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      entity.CustomProviderOllama,
		Endpoint:  endpoint,
		CreatedAt: time.Now(),
	}
	if err := uow.CustomProviderRepository().Create(ctx, provider); err != nil {
		return nil, err
	}

	return toCustomProviderResponse(provider), nil
}

func (s *providerService) RegisterOpenRouter(ctx context.Context, userId uuid.UUID, req *dto.RegisterOpenRouterRequest) (*dto.CustomProviderResponse, error) {
	meta, err := s.probeOpenRouterModel(ctx, req.Name)
	if err != nil {
		return nil, serverutils.NewUnprocessable(fmt.Sprintf("Unknown OpenRouter model: %v", err))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.CustomProviderRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProviderType{Type: entity.CustomProviderOpenRouter},
		specification.ByName{Name: req.Name},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("Model already registered")
	}

	provider := &entity.CustomProvider{
		Id:                  uuid.New(),
		UserId:              userId,
		Type:                entity.CustomProviderOpenRouter,
		Name:                req.Name,
		SupportsAttachments: meta.supportsImages,
		Capabilities: map[string]interface{}{
			"input_modalities": meta.inputModalities,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.CustomProviderRepository().Create(ctx, provider); err != nil {
		return nil, err
	}

	return toCustomProviderResponse(provider), nil
}

func (s *providerService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.CustomProviderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	providers, err := uow.CustomProviderRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CustomProviderResponse, 0, len(providers))
	for _, p := range providers {
		result = append(result, toCustomProviderResponse(p))
	}
	return result, nil
}

func (s *providerService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	provider, err := uow.CustomProviderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if provider == nil {
		return serverutils.NewNotFound("Custom provider not found")
	}
	return uow.CustomProviderRepository().Delete(ctx, provider.Id)
}

func (s *providerService) DeleteOpenRouterByName(ctx context.Context, userId uuid.UUID, name string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	provider, err := uow.CustomProviderRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProviderType{Type: entity.CustomProviderOpenRouter},
		specification.ByName{Name: name},
	)
	if err != nil {
		return err
	}
	if provider == nil {
		return serverutils.NewNotFound("Model not registered")
	}
	return uow.CustomProviderRepository().Delete(ctx, provider.Id)
}

func (s *providerService) ComposerModels(ctx context.Context, userId uuid.UUID) ([]*dto.ComposerModelResponse, error) {
	creds, err := s.credentialService.UnsealedFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ComposerModelResponse, 0)
	for _, providerId := range s.chatCatalog.ProviderIds() {
		if _, ok := creds.Secret(providerId); !ok {
			continue
		}
		provider, _ := s.chatCatalog.Provider(providerId)
		for _, m := range provider.Models {
			result = append(result, &dto.ComposerModelResponse{
				Id:                  m.Id,
				Name:                m.Name,
				Provider:            providerId,
				ModelType:           factory.ModelTypeProvider,
				SupportsAttachments: m.SupportsAttachments,
				Free:                m.Free,
				Experimental:        m.Experimental,
			})
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	custom, err := uow.CustomProviderRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	for _, p := range custom {
		switch p.Type {
		case entity.CustomProviderOpenRouter:
			if _, ok := creds.Secret("openrouter"); !ok {
				continue
			}
			result = append(result, &dto.ComposerModelResponse{
				Id:                  p.Name,
				Name:                p.Name,
				Provider:            "openrouter",
				ModelType:           factory.ModelTypeOpenRouter,
				SupportsAttachments: p.SupportsAttachments,
			})
		case entity.CustomProviderOllama:
			models, err := s.listOllamaModels(ctx, p.Endpoint)
			if err != nil {
				s.logger.Warn("Provider", "Ollama host unreachable, skipping", map[string]interface{}{
					"endpoint": p.Endpoint,
					"error":    err.Error(),
				})
				continue
			}
			for _, id := range models {
				result = append(result, &dto.ComposerModelResponse{
					Id:        id,
					Name:      id,
					Provider:  "ollama",
					ModelType: factory.ModelTypeOllama,
					Endpoint:  p.Endpoint,
				})
			}
		}
	}

	return result, nil
}

// probeOllama checks host liveness via the OpenAI-compatible models listing.
func (s *providerService) probeOllama(ctx context.Context, endpoint string) error {
	_, err := s.listOllamaModels(ctx, endpoint)
	return err
}

func (s *providerService) listOllamaModels(ctx context.Context, endpoint string) ([]string, error) {
	cacheKey := "ollama_models:" + endpoint
	if cached, found := s.probeCache.Get(cacheKey); found {
		return cached.([]string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/v1/models", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("models endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Data []struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(body.Data))
	for _, m := range body.Data {
		models = append(models, m.Id)
	}
	s.probeCache.Set(cacheKey, models, gocache.DefaultExpiration)
	return models, nil
}

type openRouterModelMeta struct {
	inputModalities []string
	supportsImages  bool
}

func (s *providerService) probeOpenRouterModel(ctx context.Context, name string) (*openRouterModelMeta, error) {
	cacheKey := "openrouter_meta:" + name
	if cached, found := s.probeCache.Get(cacheKey); found {
		return cached.(*openRouterModelMeta), nil
	}

	endpoint := "https://openrouter.ai/api/v1/models/" + name + "/endpoints"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("metadata endpoint returned status %d: %s", resp.StatusCode, string(raw))
	}

	var body struct {
		Data struct {
			Architecture struct {
				InputModalities []string `json:"input_modalities"`
			} `json:"architecture"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	meta := &openRouterModelMeta{inputModalities: body.Data.Architecture.InputModalities}
	for _, modality := range meta.inputModalities {
		if modality == "image" {
			meta.supportsImages = true
		}
	}
	s.probeCache.Set(cacheKey, meta, gocache.DefaultExpiration)
	return meta, nil
}

func toCustomProviderResponse(p *entity.CustomProvider) *dto.CustomProviderResponse {
	return &dto.CustomProviderResponse{
		Id:                  p.Id,
		Type:                p.Type,
		Endpoint:            p.Endpoint,
		Name:                p.Name,
		SupportsAttachments: p.SupportsAttachments,
		CreatedAt:           p.CreatedAt,
	}
}
