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

type CustomProviderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProviderMapper
}

func NewCustomProviderRepository(db *gorm.DB) contract.CustomProviderRepository {
	return &CustomProviderRepositoryImpl{
		db:     db,
		mapper: mapper.NewProviderMapper(),
	}
}

func (r *CustomProviderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomProviderRepositoryImpl) Create(ctx context.Context, provider *entity.CustomProvider) error {
	m := r.mapper.CustomProviderToModel(provider)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*provider = *r.mapper.CustomProviderToEntity(m)
	return nil
}

func (r *CustomProviderRepositoryImpl) Update(ctx context.Context, provider *entity.CustomProvider) error {
	m := r.mapper.CustomProviderToModel(provider)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*provider = *r.mapper.CustomProviderToEntity(m)
	return nil
}

func (r *CustomProviderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomProvider{}, id).Error
}

func (r *CustomProviderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomProvider, error) {
	var m model.CustomProvider
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CustomProviderToEntity(&m), nil
}

func (r *CustomProviderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomProvider, error) {
	var models []*model.CustomProvider
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CustomProvider, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CustomProviderToEntity(m)
	}
	return entities, nil
}

func (r *CustomProviderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CustomProvider{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
