package unitofwork

import (
	"context"

	"cramwell-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NotebookRepository() contract.NotebookRepository
	DocumentRepository() contract.DocumentRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	StudyFeatureRepository() contract.StudyFeatureRepository
	SystemLogRepository() contract.SystemLogRepository
}
