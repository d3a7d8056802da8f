package mapper

import (
	"encoding/json"
	"time"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var info entity.ContentInfo
	if len(d.ContentInfo) > 0 {
		// A malformed jsonb payload degrades to an empty ContentInfo.
		_ = json.Unmarshal(d.ContentInfo, &info)
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:           d.Id,
		NotebookId:   d.NotebookId,
		UserId:       d.UserId,
		DocumentType: d.DocumentType,
		DocumentName: d.DocumentName,
		StoragePath:  d.StoragePath,
		ByteSize:     d.ByteSize,
		ContentInfo:  info,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	info, _ := json.Marshal(d.ContentInfo)

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:           d.Id,
		NotebookId:   d.NotebookId,
		UserId:       d.UserId,
		DocumentType: d.DocumentType,
		DocumentName: d.DocumentName,
		StoragePath:  d.StoragePath,
		ByteSize:     d.ByteSize,
		ContentInfo:  datatypes.JSON(info),
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
