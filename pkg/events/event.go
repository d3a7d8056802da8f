package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_BATCH_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; prefer the typed constructors
// below over building one by hand.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeDocumentBatchCompleted = "DOCUMENT_BATCH_COMPLETED"
	TypeChatSessionDeactivated = "CHAT_SESSION_DEACTIVATED"
	TypeStudyFeatureGenerated  = "STUDY_FEATURE_GENERATED"
)

// NewDocumentBatchCompleted records the outcome of one upload batch.
func NewDocumentBatchCompleted(notebookId, userId uuid.UUID, uploaded, duplicates, failed int) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentBatchCompleted,
		Data: map[string]interface{}{
			"notebook_id": notebookId.String(),
			"user_id":     userId.String(),
			"uploaded":    uploaded,
			"duplicates":  duplicates,
			"failed":      failed,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatSessionDeactivated records a study session being closed.
func NewChatSessionDeactivated(sessionId, notebookId, userId uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: TypeChatSessionDeactivated,
		Data: map[string]interface{}{
			"chat_session_id": sessionId.String(),
			"notebook_id":     notebookId.String(),
			"user_id":         userId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewStudyFeatureGenerated records a fresh study artifact for a notebook.
func NewStudyFeatureGenerated(notebookId uuid.UUID, featureType string) BaseEvent {
	return BaseEvent{
		Type: TypeStudyFeatureGenerated,
		Data: map[string]interface{}{
			"notebook_id":  notebookId.String(),
			"feature_type": featureType,
		},
		OccurredAt: time.Now(),
	}
}
