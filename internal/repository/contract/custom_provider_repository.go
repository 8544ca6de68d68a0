package contract

import (
	"context"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CustomProviderRepository interface {
	Create(ctx context.Context, provider *entity.CustomProvider) error
	Update(ctx context.Context, provider *entity.CustomProvider) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomProvider, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomProvider, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
