package mapper

import (
	"time"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/model"
)

type StudyFeatureMapper struct{}

func NewStudyFeatureMapper() *StudyFeatureMapper {
	return &StudyFeatureMapper{}
}

func (m *StudyFeatureMapper) ToEntity(f *model.StudyFeature) *entity.StudyFeature {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.StudyFeature{
		Id:          f.Id,
		NotebookId:  f.NotebookId,
		FeatureType: f.FeatureType,
		Content:     f.Content,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *StudyFeatureMapper) ToModel(f *entity.StudyFeature) *model.StudyFeature {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.StudyFeature{
		Id:          f.Id,
		NotebookId:  f.NotebookId,
		FeatureType: f.FeatureType,
		Content:     f.Content,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
