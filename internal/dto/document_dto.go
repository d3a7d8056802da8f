package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UploadFile is one candidate file in a batch. Content is fully buffered
// by the controller before the service runs; Size is the byte length of
// Content for real uploads.
type UploadFile struct {
	Name    string
	Size    int64
	Content []byte
}

type ReviewMetadataRequest struct {
	TakenYear            *int     `json:"taken_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	TakenSemester        *string  `json:"taken_semester,omitempty"`
	Grade                *string  `json:"grade,omitempty"`
	CourseReviewScore    *int     `json:"course_review_score,omitempty" validate:"omitempty,min=1,max=5"`
	ProfessorReviewScore *int     `json:"professor_review_score,omitempty" validate:"omitempty,min=1,max=5"`
	InputHours           *float64 `json:"input_hours,omitempty" validate:"omitempty,min=0"`
}

type UploadBatchRequest struct {
	NotebookId   uuid.UUID
	DocumentType string
	Files        []UploadFile
	Review       *ReviewMetadataRequest
}

// File outcome statuses within a batch.
const (
	UploadStatusUploaded    = "uploaded"
	UploadStatusDuplicate   = "duplicate"
	UploadStatusFailed      = "failed"
	UploadStatusIndexFailed = "index_failed"
)

type UploadFileResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type UploadFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadBatchResult reports every file of a batch in input order plus
// the aggregate classification. A batch with failures is still a
// completed batch, not an error.
type UploadBatchResult struct {
	Results    []UploadFileResult `json:"results"`
	Uploaded   []string           `json:"uploaded"`
	Duplicates []string           `json:"duplicates"`
	Failed     []UploadFailure    `json:"failed"`
}

type DocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	NotebookId   uuid.UUID  `json:"notebook_id"`
	DocumentType string     `json:"document_type"`
	DocumentName string     `json:"document_name"`
	ByteSize     int64      `json:"byte_size"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// --- Typed errors surfaced by the upload pipeline ---

// InvalidFileKind distinguishes type rejections from size rejections.
const (
	InvalidFileKindType = "type"
	InvalidFileKindSize = "size"
)

type InvalidFile struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// BatchValidationError aborts the whole batch before any write.
type BatchValidationError struct {
	Invalid []InvalidFile `json:"invalid"`
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("upload batch rejected: %d invalid file(s)", len(e.Invalid))
}

// UploadInFlightError signals a concurrent submit for the same notebook.
type UploadInFlightError struct {
	NotebookId uuid.UUID `json:"notebook_id"`
}

func (e *UploadInFlightError) Error() string {
	return "an upload batch is already in flight for this notebook"
}
