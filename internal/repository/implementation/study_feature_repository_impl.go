package implementation

import (
	"context"
	"errors"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/mapper"
	"cramwell-be/internal/model"
	"cramwell-be/internal/repository/contract"
	"cramwell-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudyFeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudyFeatureMapper
}

func NewStudyFeatureRepository(db *gorm.DB) contract.StudyFeatureRepository {
	return &StudyFeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudyFeatureMapper(),
	}
}

func (r *StudyFeatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert keeps exactly one row per (notebook_id, feature_type):
// regenerating a feature overwrites the previous content.
func (r *StudyFeatureRepositoryImpl) Upsert(ctx context.Context, feature *entity.StudyFeature) error {
	m := r.mapper.ToModel(feature)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "notebook_id"}, {Name: "feature_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyFeatureRepositoryImpl) FindOne(ctx context.Context, notebookId uuid.UUID, featureType string) (*entity.StudyFeature, error) {
	var m model.StudyFeature
	err := r.db.WithContext(ctx).
		Where("notebook_id = ? AND feature_type = ?", notebookId, featureType).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StudyFeatureRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.StudyFeature{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
