package contract

import (
	"context"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StudyFeatureRepository interface {
	// Upsert inserts or overwrites the single row keyed by
	// (notebook_id, feature_type).
	Upsert(ctx context.Context, feature *entity.StudyFeature) error
	FindOne(ctx context.Context, notebookId uuid.UUID, featureType string) (*entity.StudyFeature, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
