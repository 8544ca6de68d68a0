package implementation

import (
	"context"
	"errors"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/mapper"
	"ai-chathub-be/internal/model"
	"ai-chathub-be/internal/repository/contract"
	"ai-chathub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileMapper
}

func NewAttachmentRepository(db *gorm.DB) contract.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileMapper(),
	}
}

func (r *AttachmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.Attachment) error {
	m := r.mapper.AttachmentToModel(attachment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.AttachmentToEntity(m)
	return nil
}

func (r *AttachmentRepositoryImpl) Update(ctx context.Context, attachment *entity.Attachment) error {
	m := r.mapper.AttachmentToModel(attachment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.AttachmentToEntity(m)
	return nil
}

func (r *AttachmentRepositoryImpl) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_id = ?", chatId).Delete(&model.Attachment{}).Error
}

func (r *AttachmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	var m model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AttachmentToEntity(&m), nil
}

func (r *AttachmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var models []*model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Attachment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AttachmentToEntity(m)
	}
	return entities, nil
}
