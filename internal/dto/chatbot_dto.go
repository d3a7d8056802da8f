package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatSessionResponse struct {
	Id         uuid.UUID `json:"id"`
	NotebookId uuid.UUID `json:"notebook_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ResumeSessionResponse carries the current session plus its ordered
// history (empty for a fresh session).
type ResumeSessionResponse struct {
	Session  ChatSessionResponse   `json:"session"`
	Messages []ChatMessageResponse `json:"messages"`
}

type SendChatRequest struct {
	NotebookId uuid.UUID `json:"notebook_id" validate:"required"`
	Message    string    `json:"message" validate:"required"`
}

type SendChatResponse struct {
	ChatSessionId uuid.UUID            `json:"chat_session_id"`
	Sent          *ChatMessageResponse `json:"sent"`
	Reply         *ChatMessageResponse `json:"reply"`
}

type DeactivateSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

// SessionNotFoundError covers lookups for missing or foreign sessions.
type SessionNotFoundError struct {
	SessionId uuid.UUID `json:"session_id"`
}

func (e *SessionNotFoundError) Error() string {
	return "session not found or access denied"
}
