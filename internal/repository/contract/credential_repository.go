package contract

import (
	"context"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CredentialRepository interface {
	Create(ctx context.Context, credential *entity.Credential) error
	Update(ctx context.Context, credential *entity.Credential) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Credential, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Credential, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
