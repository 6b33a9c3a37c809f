package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/apperror"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/pkg/events"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/prompt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(provider *fakeProvider, timeout time.Duration) (IChatService, *memory.SessionRepository, *fakePublisher) {
	repo := memory.NewSessionRepository()
	pub := &fakePublisher{}
	svc := NewChatService(repo, provider, prompt.NewBuilder(nil), pub, ChatServiceConfig{
		Model:   "llama3.1:8b",
		Timeout: timeout,
	}, logger.NewNopLogger())
	return svc, repo, pub
}

func TestSendChatAppendsUserThenAssistant(t *testing.T) {
	provider := &fakeProvider{answer: "The total is $212.40."}
	svc, repo, pub := newChatFixture(provider, time.Second)
	repo.Add("r.txt", 14, "Total: $212.40", "text/plain")

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "What is the total?"})
	require.NoError(t, err)

	assert.Equal(t, "ai", res.Role)
	assert.Equal(t, "The total is $212.40.", res.Content)

	msgs := repo.ListMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, msgs[0].Role)
	assert.Equal(t, "What is the total?", msgs[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, msgs[1].Role)
	assert.Equal(t, res.Id, msgs[1].Id)

	require.Equal(t, 1, provider.calls())
	assert.Equal(t, "llama3.1:8b", provider.models[0])
	assert.Contains(t, provider.prompts[0], "Document: r.txt\nTotal: $212.40")
	assert.Contains(t, provider.prompts[0], "What is the total?")

	assert.Equal(t, []string{events.ChatMessageAppended, events.ChatMessageAppended}, pub.types())
}

func TestSendChatKeepsQuestionVerbatim(t *testing.T) {
	provider := &fakeProvider{answer: "ok"}
	svc, repo, _ := newChatFixture(provider, time.Second)
	repo.Add("a.txt", 1, "a", "text/plain")

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "  spaced question?\n"})
	require.NoError(t, err)

	assert.Equal(t, "  spaced question?\n", repo.ListMessages()[0].Content)
}

func TestSendChatInvalidQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		t.Run(strings.ReplaceAll(q, "\n", `\n`), func(t *testing.T) {
			provider := &fakeProvider{answer: "x"}
			svc, repo, _ := newChatFixture(provider, time.Second)
			repo.Add("a.txt", 1, "a", "text/plain")

			_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: q})

			assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
			assert.Empty(t, repo.ListMessages())
			assert.Equal(t, 0, provider.calls())
		})
	}
}

func TestSendChatNoDocuments(t *testing.T) {
	provider := &fakeProvider{answer: "x"}
	svc, repo, pub := newChatFixture(provider, time.Second)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "hi"})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNoDocuments, appErr.Kind)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "No documents")
	assert.Equal(t, 0, provider.calls())
	assert.Empty(t, repo.ListMessages())
	assert.Empty(t, pub.types())
}

func TestSendChatProviderFailureKeepsUserTurn(t *testing.T) {
	provider := &fakeProvider{err: llm.NewProviderError("fake", 503, errors.New("upstream secret detail"))}
	svc, repo, _ := newChatFixture(provider, time.Second)
	repo.Add("a.txt", 1, "a", "text/plain")

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q"})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindProviderError, appErr.Kind)
	assert.Equal(t, 500, appErr.Code)
	assert.NotContains(t, appErr.Message, "secret")

	var provErr *llm.ProviderError
	assert.True(t, errors.As(err, &provErr))

	msgs := repo.ListMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, msgs[0].Role)
}

func TestSendChatEmptyAnswerBecomesApology(t *testing.T) {
	for _, answer := range []string{"", "  \n "} {
		provider := &fakeProvider{answer: answer}
		svc, repo, _ := newChatFixture(provider, time.Second)
		repo.Add("a.txt", 1, "a", "text/plain")

		res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q"})
		require.NoError(t, err)

		assert.Equal(t, constant.ChatApologyMessage, res.Content)
		msgs := repo.ListMessages()
		require.Len(t, msgs, 2)
		assert.Equal(t, constant.ChatApologyMessage, msgs[1].Content)
	}
}

func TestSendChatTimeout(t *testing.T) {
	provider := &fakeProvider{block: true}
	svc, repo, _ := newChatFixture(provider, 30*time.Millisecond)
	repo.Add("a.txt", 1, "a", "text/plain")

	start := time.Now()
	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q"})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, apperror.IsKind(err, apperror.KindProviderError))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, repo.ListMessages(), 1)
}

func TestSendChatHoldsNoLockDuringProviderCall(t *testing.T) {
	repo := memory.NewSessionRepository()
	repo.Add("a.txt", 1, "a", "text/plain")

	done := make(chan struct{})
	provider := &fakeProvider{answer: "ok", onCall: func() {
		// Would deadlock if the session lock were held here.
		repo.Add("b.txt", 1, "b", "text/plain")
		repo.List()
		close(done)
	}}
	svc := newChatServiceWithRepo(provider, repo)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q"})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("provider callback did not run")
	}
	assert.Equal(t, 2, repo.Count())
}

func TestSendChatClearedDuringProviderCallLeavesTranscriptEmpty(t *testing.T) {
	tests := []struct {
		name  string
		clear func(repo *memory.SessionRepository, lastId uuid.UUID)
	}{
		{"clear all", func(repo *memory.SessionRepository, _ uuid.UUID) { repo.Clear() }},
		{"remove last document", func(repo *memory.SessionRepository, id uuid.UUID) { repo.Remove(id) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewSessionRepository()
			doc := repo.Add("a.txt", 1, "a", "text/plain")
			provider := &fakeProvider{answer: "late answer", onCall: func() {
				tt.clear(repo, doc.Id)
			}}
			pub := &fakePublisher{}
			svc := NewChatService(repo, provider, prompt.NewBuilder(nil), pub, ChatServiceConfig{Model: "m"}, logger.NewNopLogger())

			res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q"})

			require.NoError(t, err)
			assert.Equal(t, "late answer", res.Content)
			assert.Equal(t, 0, repo.Count())
			assert.Empty(t, repo.ListMessages())
			assert.Equal(t, []string{events.ChatMessageAppended}, pub.types())
		})
	}
}

func TestSendChatNewDocumentDuringProviderCallKeepsTurns(t *testing.T) {
	repo := memory.NewSessionRepository()
	repo.Add("a.txt", 1, "a", "text/plain")
	provider := &fakeProvider{answer: "ok", onCall: func() {
		repo.Add("b.txt", 1, "b", "text/plain")
	}}
	svc := newChatServiceWithRepo(provider, repo)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q"})

	require.NoError(t, err)
	assert.Len(t, repo.ListMessages(), 2)
}

func newChatServiceWithRepo(provider *fakeProvider, repo *memory.SessionRepository) IChatService {
	return NewChatService(repo, provider, prompt.NewBuilder(nil), &fakePublisher{}, ChatServiceConfig{Model: "m"}, logger.NewNopLogger())
}

func TestGetMessages(t *testing.T) {
	provider := &fakeProvider{answer: "a1"}
	svc, repo, _ := newChatFixture(provider, time.Second)
	repo.Add("a.txt", 1, "a", "text/plain")

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Question: "q1"})
	require.NoError(t, err)

	msgs, err := svc.GetMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "ai", msgs[1].Role)

	empty, _, _ := newChatFixture(provider, time.Second)
	none, err := empty.GetMessages(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
