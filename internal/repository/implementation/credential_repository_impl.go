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

type CredentialRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProviderMapper
}

func NewCredentialRepository(db *gorm.DB) contract.CredentialRepository {
	return &CredentialRepositoryImpl{
		db:     db,
		mapper: mapper.NewProviderMapper(),
	}
}

func (r *CredentialRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CredentialRepositoryImpl) Create(ctx context.Context, credential *entity.Credential) error {
	m := r.mapper.CredentialToModel(credential)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*credential = *r.mapper.CredentialToEntity(m)
	return nil
}

func (r *CredentialRepositoryImpl) Update(ctx context.Context, credential *entity.Credential) error {
	m := r.mapper.CredentialToModel(credential)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*credential = *r.mapper.CredentialToEntity(m)
	return nil
}

func (r *CredentialRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Credential{}, id).Error
}

func (r *CredentialRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Credential, error) {
	var m model.Credential
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CredentialToEntity(&m), nil
}

func (r *CredentialRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Credential, error) {
	var models []*model.Credential
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Credential, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CredentialToEntity(m)
	}
	return entities, nil
}

func (r *CredentialRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Credential{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
