package contract

import (
	"context"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/repository/specification"
)

// ChatMessageRepository has no update or delete: messages are immutable
// and survive session deactivation.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
