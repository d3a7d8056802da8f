package dto

import (
	"time"

	"cramwell-be/pkg/studymd"

	"github.com/google/uuid"
)

type StudyFeatureResponse struct {
	Id          uuid.UUID  `json:"id"`
	NotebookId  uuid.UUID  `json:"notebook_id"`
	FeatureType string     `json:"feature_type"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// FlashcardsResponse exposes the parsed cards; Count of zero is a valid
// outcome ("no items found"), not an error.
type FlashcardsResponse struct {
	NotebookId uuid.UUID           `json:"notebook_id"`
	Cards      []studymd.Flashcard `json:"cards"`
	Count      int                 `json:"count"`
}

type ExamResponse struct {
	NotebookId uuid.UUID              `json:"notebook_id"`
	Questions  []studymd.ExamQuestion `json:"questions"`
	Count      int                    `json:"count"`
}

// NoDocumentsError rejects generation for empty notebooks.
type NoDocumentsError struct {
	NotebookId uuid.UUID `json:"notebook_id"`
}

func (e *NoDocumentsError) Error() string {
	return "no documents found for this notebook"
}
