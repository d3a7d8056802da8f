package service

import (
	"context"
	"fmt"
	"testing"

	"cramwell-be/internal/constant"
	"cramwell-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	uow     *fakeUnitOfWork
	convo   *fakeConversationalist
	bus     *fakeBus
	service IChatService
}

func newChatFixture() *chatFixture {
	uow := newFakeUnitOfWork()
	convo := &fakeConversationalist{reply: "Mitochondria produce ATP."}
	bus := &fakeBus{}
	svc := NewChatService(&fakeFactory{uow: uow}, convo, bus, nopLogger{})
	return &chatFixture{uow: uow, convo: convo, bus: bus, service: svc}
}

func TestResumeOrCreateIsIdempotent(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	first, err := f.service.ResumeOrCreate(context.Background(), userId, notebookId)
	require.NoError(t, err)
	second, err := f.service.ResumeOrCreate(context.Background(), userId, notebookId)
	require.NoError(t, err)

	assert.Equal(t, first.Session.Id, second.Session.Id)
	assert.Len(t, f.uow.chatSessions.rows, 1)
}

func TestResumeOrCreateReturnsMostRecentActive(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	_, err := f.service.ResumeOrCreate(context.Background(), userId, notebookId)
	require.NoError(t, err)
	fresh, err := f.service.CreateNew(context.Background(), userId, notebookId)
	require.NoError(t, err)

	resumed, err := f.service.ResumeOrCreate(context.Background(), userId, notebookId)
	require.NoError(t, err)
	assert.Equal(t, fresh.Id, resumed.Session.Id)
}

func TestCreateNewToleratesMultipleActiveSessions(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	first, err := f.service.CreateNew(context.Background(), userId, notebookId)
	require.NoError(t, err)
	second, err := f.service.CreateNew(context.Background(), userId, notebookId)
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, second.Id)

	active, err := f.service.ListActive(context.Background(), userId, notebookId)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// created_at descending: the newest session first.
	assert.Equal(t, second.Id, active[0].Id)
}

func TestDeactivatePreservesHistory(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	sent, err := f.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		NotebookId: notebookId,
		Message:    "what is ATP?",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Deactivate(context.Background(), userId, sent.ChatSessionId))

	active, err := f.service.ListActive(context.Background(), userId, notebookId)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := f.service.GetHistory(context.Background(), userId, sent.ChatSessionId)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, history[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, history[1].Role)

	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "CHAT_SESSION_DEACTIVATED", f.bus.published[0].EventType())
}

func TestDeactivateUnknownSession(t *testing.T) {
	f := newChatFixture()

	err := f.service.Deactivate(context.Background(), uuid.New(), uuid.New())
	var notFound *dto.SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSendChatPersistsBothMessages(t *testing.T) {
	f := newChatFixture()
	userId := uuid.New()

	res, err := f.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		NotebookId: uuid.New(),
		Message:    "what is ATP?",
	})
	require.NoError(t, err)

	assert.Equal(t, "what is ATP?", res.Sent.Content)
	assert.Equal(t, "Mitochondria produce ATP.", res.Reply.Content)

	require.Len(t, f.uow.chatMessages.rows, 2)
	userMsg := f.uow.chatMessages.rows[0]
	assistantMsg := f.uow.chatMessages.rows[1]
	require.NotNil(t, userMsg.UserId)
	assert.Equal(t, userId, *userMsg.UserId)
	assert.Nil(t, assistantMsg.UserId)
}

func TestSendChatFailureKeepsUserMessage(t *testing.T) {
	f := newChatFixture()
	f.convo.err = fmt.Errorf("conversation service returned 503")
	userId := uuid.New()

	_, err := f.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		NotebookId: uuid.New(),
		Message:    "hello?",
	})
	require.Error(t, err)

	// The optimistic user message survives the failed reply.
	require.Len(t, f.uow.chatMessages.rows, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, f.uow.chatMessages.rows[0].Role)
}

func TestGetHistoryChecksOwnership(t *testing.T) {
	f := newChatFixture()
	owner := uuid.New()
	intruder := uuid.New()

	res, err := f.service.SendChat(context.Background(), owner, &dto.SendChatRequest{
		NotebookId: uuid.New(),
		Message:    "mine",
	})
	require.NoError(t, err)

	_, err = f.service.GetHistory(context.Background(), intruder, res.ChatSessionId)
	var notFound *dto.SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}
