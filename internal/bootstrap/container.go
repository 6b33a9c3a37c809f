package bootstrap

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/controller"
	"ai-docchat-be/internal/handler"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/service"
	"ai-docchat-be/internal/websocket"
	"ai-docchat-be/pkg/extractor"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/factory"
	pktNats "ai-docchat-be/pkg/nats"
	"ai-docchat-be/pkg/prompt"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const SessionEventsTopic = "session_events"

type Container struct {
	Logger      logger.ILogger
	EventLogger logger.ILogger

	// Infrastructure
	PubSub       *gochannel.GoChannel
	NatsPub      *pktNats.Publisher
	WebSocketHub *websocket.Hub
	LLMProvider  llm.LLMProvider
	SessionRepo  *memory.SessionRepository

	// Services
	PublisherService service.IPublisherService
	ConsumerService  service.IConsumerService
	DocumentService  service.IDocumentService
	ChatService      service.IChatService

	// Controllers & Handlers
	HealthController   controller.IHealthController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	EventHandler       *handler.EventHandler

	cancel context.CancelFunc
}

// Dependencies are the pieces tests usually replace.
type Dependencies struct {
	Logger      logger.ILogger
	EventLogger logger.ILogger
	LLMProvider llm.LLMProvider
	NatsPub     *pktNats.Publisher
}

// NewContainer builds the production graph from configuration.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	eventLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "events.log"))

	// 2. LLM Provider
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Settings{
		Provider:  cfg.Ai.LLMProvider,
		Model:     cfg.Ai.LLMModel,
		BaseURL:   cfg.Ai.LLMBaseURL,
		APIKey:    cfg.Ai.LLMAPIKey,
		MaxTokens: cfg.Ai.LLMMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 3. NATS (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, events stay in-process", map[string]interface{}{"error": err.Error()})
			natsPub = nil
		}
	}

	return Build(cfg, Dependencies{
		Logger:      sysLogger,
		EventLogger: eventLogger,
		LLMProvider: llmProvider,
		NatsPub:     natsPub,
	}), nil
}

// Build wires every component around the given dependencies.
func Build(cfg *config.Config, deps Dependencies) *Container {
	sysLogger := deps.Logger
	if sysLogger == nil {
		sysLogger = logger.NewNopLogger()
	}
	eventLogger := deps.EventLogger
	if eventLogger == nil {
		eventLogger = sysLogger
	}

	// Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		logger.NewWatermillAdapter(sysLogger),
	)

	// Session state
	sessionRepo := memory.NewSessionRepository()
	extractionCache := memory.NewExtractionCache(cfg.Upload.ExtractionCacheTTL)

	// WebSocket Hub
	wsHub := websocket.NewHub(eventLogger)

	// Services
	publisherService := service.NewPublisherService(SessionEventsTopic, pubSub, sysLogger)

	var forwarder service.EventForwarder
	if deps.NatsPub != nil {
		forwarder = deps.NatsPub
	}
	consumerService := service.NewConsumerService(pubSub, SessionEventsTopic, wsHub, forwarder, eventLogger)

	documentService := service.NewDocumentService(
		sessionRepo,
		extractor.New(),
		extractionCache,
		publisherService,
		cfg.Upload.MaxBytes,
		sysLogger,
	)

	chatService := service.NewChatService(
		sessionRepo,
		deps.LLMProvider,
		prompt.NewBuilder(prompt.StrategyFor(cfg.Ai.ContextMaxChars)),
		publisherService,
		service.ChatServiceConfig{
			Model:   cfg.Ai.LLMModel,
			Timeout: cfg.Ai.Timeout,
		},
		sysLogger,
	)

	return &Container{
		Logger:      sysLogger,
		EventLogger: eventLogger,

		PubSub:       pubSub,
		NatsPub:      deps.NatsPub,
		WebSocketHub: wsHub,
		LLMProvider:  deps.LLMProvider,
		SessionRepo:  sessionRepo,

		PublisherService: publisherService,
		ConsumerService:  consumerService,
		DocumentService:  documentService,
		ChatService:      chatService,

		HealthController:   controller.NewHealthController(),
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		EventHandler:       handler.NewEventHandler(wsHub, eventLogger),
	}
}

// Start runs the background workers: the hub loop, the event consumer and
// the NATS stream check.
func (c *Container) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start event consumer: %w", err)
	}

	if c.NatsPub != nil {
		streamCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := c.NatsPub.EnsureStream(streamCtx); err != nil {
			c.Logger.Warn("Bootstrap", "NATS stream not ensured", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func (c *Container) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.PubSub.Close(); err != nil {
		c.Logger.Warn("Bootstrap", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	if c.NatsPub != nil {
		c.NatsPub.Close()
	}
	if closer, ok := c.LLMProvider.(io.Closer); ok {
		_ = closer.Close()
	}
	_ = c.EventLogger.Sync()
	_ = c.Logger.Sync()
}
