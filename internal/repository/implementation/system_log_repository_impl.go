package implementation

import (
	"context"
	"encoding/json"

	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/model"
	"ai-chathub-be/internal/repository/contract"
	"ai-chathub-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, log *entity.SystemLog) error {
	var details datatypes.JSON
	if log.Details != nil {
		raw, err := json.Marshal(log.Details)
		if err != nil {
			return err
		}
		details = raw
	}
	m := &model.SystemLog{
		Id:        log.Id,
		EventType: log.EventType,
		Details:   details,
		CreatedAt: log.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.Id
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *SystemLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error) {
	var models []*model.SystemLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SystemLog, len(models))
	for i, m := range models {
		var details map[string]interface{}
		if len(m.Details) > 0 {
			_ = json.Unmarshal(m.Details, &details)
		}
		entities[i] = &entity.SystemLog{
			Id:        m.Id,
			EventType: m.EventType,
			Details:   details,
			CreatedAt: m.CreatedAt,
		}
	}
	return entities, nil
}
