package implementation

import (
	"context"
	"encoding/json"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/model"
	"cramwell-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, log *entity.SystemLog) error {
	var details datatypes.JSON
	if log.Details != nil {
		raw, err := json.Marshal(log.Details)
		if err != nil {
			return err
		}
		details = datatypes.JSON(raw)
	}

	m := &model.SystemLog{
		Id:        log.Id,
		Level:     log.Level,
		Module:    log.Module,
		Message:   log.Message,
		Details:   details,
		CreatedAt: log.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}
