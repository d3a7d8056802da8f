package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewMetadata is not relational. It is serialized to a JSON blob in
// object storage, linked to its anchor document by DocumentId. The blob
// write is best-effort: a missing blob next to an existing document row
// is a tolerated state.
type ReviewMetadata struct {
	DocumentId           uuid.UUID `json:"document_id"`
	NotebookId           uuid.UUID `json:"notebook_id"`
	TakenYear            *int      `json:"taken_year,omitempty"`
	TakenSemester        *string   `json:"taken_semester,omitempty"`
	Grade                *string   `json:"grade,omitempty"`
	CourseReviewScore    *int      `json:"course_review_score,omitempty"`
	ProfessorReviewScore *int      `json:"professor_review_score,omitempty"`
	InputHours           *float64  `json:"input_hours,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}
