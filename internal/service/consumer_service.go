package service

import (
	"context"

	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBroadcaster delivers events to live clients (the WebSocket hub).
type EventBroadcaster interface {
	Broadcast(evt events.Event)
}

// EventForwarder ships events to an external bus (NATS JetStream).
type EventForwarder interface {
	Publish(ctx context.Context, evt events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	broadcaster EventBroadcaster
	forwarder   EventForwarder
	logger      logger.ILogger
}

// NewConsumerService wires the session event topic to its sinks. forwarder
// may be nil when no external bus is configured.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	broadcaster EventBroadcaster,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		broadcaster: broadcaster,
		forwarder:   forwarder,
		logger:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Sinks are best effort, so every message is acked.
	defer msg.Ack()

	evt, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("Events", "Failed to decode event", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		return
	}

	cs.logger.Info("Events", "Session event", map[string]interface{}{"type": evt.Type, "data": evt.Data})

	if cs.broadcaster != nil {
		cs.broadcaster.Broadcast(evt)
	}

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, evt); err != nil {
			cs.logger.Warn("Events", "Failed to forward event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
		}
	}
}
