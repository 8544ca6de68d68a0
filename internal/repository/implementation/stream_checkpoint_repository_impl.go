package implementation

import (
	"context"
	"errors"
	"time"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/mapper"
	"ai-chathub-be/internal/model"
	"ai-chathub-be/internal/repository/contract"
	"ai-chathub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StreamCheckpointRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewStreamCheckpointRepository(db *gorm.DB) contract.StreamCheckpointRepository {
	return &StreamCheckpointRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *StreamCheckpointRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StreamCheckpointRepositoryImpl) Create(ctx context.Context, checkpoint *entity.StreamCheckpoint) error {
	m := r.mapper.CheckpointToModel(checkpoint)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*checkpoint = *r.mapper.CheckpointToEntity(m)
	return nil
}

// DeleteByStreamId is idempotent: deleting a checkpoint that was already
// removed (expired by the janitor, or raced by another finisher) succeeds.
func (r *StreamCheckpointRepositoryImpl) DeleteByStreamId(ctx context.Context, streamId string) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByStreamID{StreamID: streamId})
	return query.Delete(&model.StreamCheckpoint{}).Error
}

func (r *StreamCheckpointRepositoryImpl) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByChatID{ChatID: chatId})
	return query.Delete(&model.StreamCheckpoint{}).Error
}

func (r *StreamCheckpointRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.CreatedBefore{Before: cutoff})
	result := query.Delete(&model.StreamCheckpoint{})
	return result.RowsAffected, result.Error
}

func (r *StreamCheckpointRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StreamCheckpoint, error) {
	var m model.StreamCheckpoint
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CheckpointToEntity(&m), nil
}

func (r *StreamCheckpointRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StreamCheckpoint, error) {
	var models []*model.StreamCheckpoint
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.StreamCheckpoint, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CheckpointToEntity(m)
	}
	return entities, nil
}

func (r *StreamCheckpointRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.StreamCheckpoint{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
