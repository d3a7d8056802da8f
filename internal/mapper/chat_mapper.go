package mapper

import (
	"cramwell-be/internal/entity"
	"cramwell-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:         s.Id,
		UserId:     s.UserId,
		NotebookId: s.NotebookId,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:         s.Id,
		UserId:     s.UserId,
		NotebookId: s.NotebookId,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		UserId:        c.UserId,
		Role:          c.Role,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		UserId:        c.UserId,
		Role:          c.Role,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}
}
