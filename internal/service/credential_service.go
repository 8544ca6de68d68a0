package service

import (
	"context"
	"strings"
	"time"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"
	"ai-chathub-be/pkg/events"
	"ai-chathub-be/pkg/llm/factory"
	"ai-chathub-be/pkg/secrets"

	"github.com/google/uuid"
)

type ICredentialService interface {
	Set(ctx context.Context, userId uuid.UUID, req *dto.SetCredentialRequest) (*dto.CredentialResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.CredentialResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, providerId string) error
	// UnsealedFor loads and unseals every credential the user holds, keyed by
	// provider id. Used by the dispatch path; plaintext never leaves the
	// request that needed it.
	UnsealedFor(ctx context.Context, userId uuid.UUID) (factory.CredentialMap, error)
}

type credentialService struct {
	uowFactory       unitofwork.RepositoryFactory
	box              *secrets.Box
	publisherService IPublisherService
}

func NewCredentialService(
	uowFactory unitofwork.RepositoryFactory,
	box *secrets.Box,
	publisherService IPublisherService,
) ICredentialService {
	return &credentialService{
		uowFactory:       uowFactory,
		box:              box,
		publisherService: publisherService,
	}
}

// Set upserts the (user, provider) credential. The secret is sealed before
// it touches the database and is not validated against the provider.
func (s *credentialService) Set(ctx context.Context, userId uuid.UUID, req *dto.SetCredentialRequest) (*dto.CredentialResponse, error) {
	sealed, err := s.box.Seal(req.Secret)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.CredentialRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProviderID{ProviderID: req.ProviderId},
	)
	if err != nil {
		return nil, err
	}

	var cred *entity.Credential
	if existing != nil {
		existing.Secret = sealed
		existing.UpdatedAt = time.Now()
		if err := uow.CredentialRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		cred = existing
	} else {
		cred = &entity.Credential{
			Id:         uuid.New(),
			UserId:     userId,
			ProviderId: req.ProviderId,
			Secret:     sealed,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := uow.CredentialRepository().Create(ctx, cred); err != nil {
			return nil, err
		}
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeCredentialSet, map[string]interface{}{
		"user_id":     userId.String(),
		"provider_id": req.ProviderId,
	}))

	return s.toResponse(cred, req.Secret), nil
}

func (s *credentialService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.CredentialResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	creds, err := uow.CredentialRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CredentialResponse, 0, len(creds))
	for _, cred := range creds {
		plain, err := s.box.Open(cred.Secret)
		if err != nil {
			// A credential sealed under a rotated key is unusable; keep it
			// listed so the user can overwrite it.
			plain = ""
		}
		result = append(result, s.toResponse(cred, plain))
	}
	return result, nil
}

func (s *credentialService) Delete(ctx context.Context, userId uuid.UUID, providerId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cred, err := uow.CredentialRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProviderID{ProviderID: providerId},
	)
	if err != nil {
		return err
	}
	if cred == nil {
		return serverutils.NewNotFound("Credential not found")
	}

	if err := uow.CredentialRepository().Delete(ctx, cred.Id); err != nil {
		return err
	}

	_ = s.publisherService.Publish(ctx, events.New(events.TypeCredentialDeleted, map[string]interface{}{
		"user_id":     userId.String(),
		"provider_id": providerId,
	}))
	return nil
}

func (s *credentialService) UnsealedFor(ctx context.Context, userId uuid.UUID) (factory.CredentialMap, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	creds, err := uow.CredentialRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	m := make(factory.CredentialMap, len(creds))
	for _, cred := range creds {
		plain, err := s.box.Open(cred.Secret)
		if err != nil {
			continue
		}
		m[cred.ProviderId] = plain
	}
	return m, nil
}

func (s *credentialService) toResponse(cred *entity.Credential, plain string) *dto.CredentialResponse {
	return &dto.CredentialResponse{
		ProviderId: cred.ProviderId,
		Preview:    maskSecret(plain),
		UpdatedAt:  cred.UpdatedAt,
	}
}

// maskSecret keeps enough of the secret to be recognizable and nothing more.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", 4) + secret[len(secret)-4:]
}
