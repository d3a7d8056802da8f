package service

import (
	"context"
	"time"

	"cramwell-be/internal/constant"
	"cramwell-be/internal/dto"
	"cramwell-be/internal/entity"
	"cramwell-be/internal/pkg/logger"
	"cramwell-be/internal/repository/specification"
	"cramwell-be/internal/repository/unitofwork"
	pkgEvents "cramwell-be/pkg/events"
	pkgNats "cramwell-be/pkg/nats"
	"cramwell-be/pkg/ragapi"

	"github.com/google/uuid"
)

type IChatService interface {
	ResumeOrCreate(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.ResumeSessionResponse, error)
	CreateNew(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.ChatSessionResponse, error)
	Deactivate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	ListActive(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	conversationalist ragapi.Conversationalist
	eventBus          pkgNats.Bus
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	conversationalist ragapi.Conversationalist,
	eventBus pkgNats.Bus,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		conversationalist: conversationalist,
		eventBus:          eventBus,
		logger:            sysLogger,
	}
}

func toSessionResponse(session *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		Id:         session.Id,
		NotebookId: session.NotebookId,
		Active:     session.Active,
		CreatedAt:  session.CreatedAt,
	}
}

func toMessageResponse(message *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        message.Id,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

// ResumeOrCreate returns the most recently created active session for
// the pair, or creates a fresh one. Calling it twice with nothing in
// between yields the same session id.
func (cs *chatService) ResumeOrCreate(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.ResumeSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByNotebookID{NotebookID: notebookId},
		specification.ActiveSessions{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if session == nil {
		session = &entity.ChatSession{
			Id:         uuid.New(),
			UserId:     userId,
			NotebookId: notebookId,
			Active:     true,
			CreatedAt:  time.Now(),
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, err
		}
		return &dto.ResumeSessionResponse{
			Session:  *toSessionResponse(session),
			Messages: make([]dto.ChatMessageResponse, 0),
		}, nil
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	history := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, msg := range messages {
		history = append(history, *toMessageResponse(msg))
	}

	return &dto.ResumeSessionResponse{
		Session:  *toSessionResponse(session),
		Messages: history,
	}, nil
}

// CreateNew always starts a fresh active session. Prior sessions stay
// untouched; several active sessions per pair is a tolerated state.
func (cs *chatService) CreateNew(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		NotebookId: notebookId,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return toSessionResponse(&session), nil
}

// Deactivate archives the session. Messages are never touched.
func (cs *chatService) Deactivate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return &dto.SessionNotFoundError{SessionId: sessionId}
	}

	session.Active = false
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	if cs.eventBus != nil {
		evt := pkgEvents.NewChatSessionDeactivated(session.Id, session.NotebookId, userId)
		if err := cs.eventBus.Publish(ctx, evt); err != nil {
			cs.logger.Warn("CHAT_SESSION", "Failed to publish deactivation event", map[string]interface{}{
				"session_id": session.Id, "error": err.Error(),
			})
		}
	}

	return nil
}

func (cs *chatService) ListActive(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByNotebookID{NotebookID: notebookId},
		specification.ActiveSessions{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, toSessionResponse(session))
	}
	return result, nil
}

func (cs *chatService) GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &dto.SessionNotFoundError{SessionId: sessionId}
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, msg := range messages {
		result = append(result, toMessageResponse(msg))
	}
	return result, nil
}

// SendChat persists the user message first, then asks the conversation
// service. On failure the user message stays persisted and the error is
// surfaced; there is no automatic retry.
func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	resumed, err := cs.ResumeOrCreate(ctx, userId, req.NotebookId)
	if err != nil {
		return nil, err
	}
	sessionId := resumed.Session.Id

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		UserId:        &userId,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Message,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	reply, err := cs.conversationalist.Chat(ctx, req.NotebookId, userId, req.Message)
	if err != nil {
		cs.logger.Error("CHAT_SESSION", "Conversation call failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return nil, err
	}

	assistantMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		UserId:        nil,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       reply,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		ChatSessionId: sessionId,
		Sent:          toMessageResponse(&userMessage),
		Reply:         toMessageResponse(&assistantMessage),
	}, nil
}
