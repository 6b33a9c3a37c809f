package service

import (
	"context"
	"strings"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/pkg/apperror"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/pkg/events"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/prompt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// IChatService answers questions against every uploaded document.
type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.ChatMessageResponse, error)
	GetMessages(ctx context.Context) ([]*dto.ChatMessageResponse, error)
}

type ChatServiceConfig struct {
	Model   string
	Timeout time.Duration
}

type chatService struct {
	sessionRepo    contract.SessionRepository
	llmProvider    llm.LLMProvider
	promptBuilder  *prompt.Builder
	publisher      IPublisherService
	chatMapper     *mapper.ChatMapper
	documentMapper *mapper.DocumentMapper
	cfg            ChatServiceConfig
	logger         logger.ILogger
}

func NewChatService(
	sessionRepo contract.SessionRepository,
	llmProvider llm.LLMProvider,
	promptBuilder *prompt.Builder,
	publisher IPublisherService,
	cfg ChatServiceConfig,
	log logger.ILogger,
) IChatService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &chatService{
		sessionRepo:    sessionRepo,
		llmProvider:    llmProvider,
		promptBuilder:  promptBuilder,
		publisher:      publisher,
		chatMapper:     mapper.NewChatMapper(),
		documentMapper: mapper.NewDocumentMapper(),
		cfg:            cfg,
		logger:         log,
	}
}

func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.ChatMessageResponse, error) {
	// 1. Validate
	if request == nil || strings.TrimSpace(request.Question) == "" {
		return nil, apperror.NewInvalidInput("Question is required")
	}
	question := request.Question

	// 2-3. Precondition and user turn in one step: nothing reaches the
	// provider without documents, and a provider failure keeps the question
	userMsg, docs, epoch, ok := cs.sessionRepo.AppendWithDocuments(constant.ChatMessageRoleUser, question)
	if !ok {
		return nil, apperror.NewNoDocuments()
	}
	cs.publishMessage(ctx, userMsg)

	// 4. Assemble context
	promptText := cs.promptBuilder.BuildPrompt(cs.documentMapper.DocumentsToSources(docs), question)

	// 5. Invoke provider (no session lock held)
	answer, err := cs.generate(ctx, promptText, len(docs))
	if err != nil {
		cs.logger.Error("ChatService", "Provider call failed", map[string]interface{}{
			"model":     cs.cfg.Model,
			"documents": len(docs),
			"error":     err.Error(),
		})
		return nil, apperror.NewProviderError(err)
	}

	// 6. Record the assistant turn, never empty
	if strings.TrimSpace(answer) == "" {
		cs.logger.Warn("ChatService", "Provider returned empty answer", map[string]interface{}{"model": cs.cfg.Model})
		answer = constant.ChatApologyMessage
	}
	assistantMsg, ok := cs.sessionRepo.AppendInEpoch(epoch, constant.ChatMessageRoleAssistant, answer)
	if !ok {
		// The session was cleared while the provider was answering.
		cs.logger.Warn("ChatService", "Session cleared during provider call, answer not recorded", map[string]interface{}{
			"model":     cs.cfg.Model,
			"documents": len(docs),
		})
		return cs.chatMapper.MessageToResponse(&entity.ChatMessage{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleAssistant,
			Content:   answer,
			CreatedAt: time.Now(),
		}), nil
	}
	cs.publishMessage(ctx, assistantMsg)

	cs.logger.Info("ChatService", "Question answered", map[string]interface{}{
		"documents":    len(docs),
		"prompt_chars": len(promptText),
		"answer_chars": len(answer),
	})

	// 7. Respond
	return cs.chatMapper.MessageToResponse(assistantMsg), nil
}

func (cs *chatService) generate(ctx context.Context, promptText string, documentCount int) (string, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "llm.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", cs.cfg.Model),
		attribute.Int("llm.prompt_chars", len(promptText)),
		attribute.Int("chat.documents", documentCount),
	)

	callCtx, cancel := context.WithTimeout(ctx, cs.cfg.Timeout)
	defer cancel()

	answer, err := cs.llmProvider.Generate(callCtx, promptText, llm.WithModel(cs.cfg.Model))
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		return "", err
	}
	return answer, nil
}

func (cs *chatService) publishMessage(ctx context.Context, msg *entity.ChatMessage) {
	cs.publisher.PublishEvent(ctx, events.New(events.ChatMessageAppended, map[string]interface{}{
		"id":        msg.Id.String(),
		"role":      cs.chatMapper.MessageToResponse(msg).Role,
		"content":   msg.Content,
		"timestamp": msg.CreatedAt,
	}))
}

func (cs *chatService) GetMessages(ctx context.Context) ([]*dto.ChatMessageResponse, error) {
	return cs.chatMapper.MessagesToResponse(cs.sessionRepo.ListMessages()), nil
}
