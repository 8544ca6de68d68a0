package implementation

import (
	"context"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/mapper"
	"ai-chathub-be/internal/model"
	"ai-chathub-be/internal/repository/contract"
	"ai-chathub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GeneratedFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileMapper
}

func NewGeneratedFileRepository(db *gorm.DB) contract.GeneratedFileRepository {
	return &GeneratedFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileMapper(),
	}
}

func (r *GeneratedFileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GeneratedFileRepositoryImpl) Create(ctx context.Context, file *entity.GeneratedFile) error {
	m := r.mapper.GeneratedFileToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.GeneratedFileToEntity(m)
	return nil
}

func (r *GeneratedFileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedFile, error) {
	var models []*model.GeneratedFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.GeneratedFile, len(models))
	for i, m := range models {
		entities[i] = r.mapper.GeneratedFileToEntity(m)
	}
	return entities, nil
}

func (r *GeneratedFileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GeneratedFile{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
