package contract

import (
	"context"
	"time"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StreamCheckpointRepository interface {
	Create(ctx context.Context, checkpoint *entity.StreamCheckpoint) error
	// DeleteByStreamId removes the checkpoint for a stream. Deleting an
	// already-removed checkpoint is not an error.
	DeleteByStreamId(ctx context.Context, streamId string) error
	DeleteByChatId(ctx context.Context, chatId uuid.UUID) error
	// DeleteOlderThan expires abandoned checkpoints and returns how many
	// rows were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StreamCheckpoint, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StreamCheckpoint, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
