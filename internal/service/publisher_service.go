package service

import (
	"context"

	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	// PublishEvent is fire-and-forget: failures are logged, not returned.
	PublishEvent(ctx context.Context, evt events.Event)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (ps *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}

func (ps *publisherService) PublishEvent(ctx context.Context, evt events.Event) {
	payload, err := events.Encode(evt)
	if err != nil {
		ps.logger.Error("Events", "Failed to encode event", map[string]interface{}{"type": evt.EventType(), "error": err.Error()})
		return
	}

	if err := ps.Publish(ctx, payload); err != nil {
		ps.logger.Warn("Events", "Failed to publish event", map[string]interface{}{"type": evt.EventType(), "error": err.Error()})
	}
}
