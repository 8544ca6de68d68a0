package contract

import (
	"context"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/specification"
)

type GeneratedFileRepository interface {
	Create(ctx context.Context, file *entity.GeneratedFile) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
