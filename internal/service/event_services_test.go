package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu       sync.Mutex
	received []events.Event
	err      error
}

func (r *recordingSink) Broadcast(evt events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, evt)
}

func (r *recordingSink) Publish(ctx context.Context, evt events.Event) error {
	r.Broadcast(evt)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.received)
}

func TestPublishedEventsReachSinks(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	hub := &recordingSink{}
	bus := &recordingSink{err: errors.New("nats down")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(pubSub, "session_events", hub, bus, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("session_events", pubSub, logger.NewNopLogger())
	publisher.PublishEvent(ctx, events.New(events.DocumentUploaded, map[string]interface{}{"name": "r.txt"}))
	publisher.PublishEvent(ctx, events.New(events.SessionCleared, nil))

	require.Eventually(t, func() bool { return hub.count() == 2 && bus.count() == 2 }, time.Second, 5*time.Millisecond)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	byType := make(map[string]events.Event)
	for _, evt := range hub.received {
		byType[evt.EventType()] = evt
	}
	require.Contains(t, byType, events.DocumentUploaded)
	require.Contains(t, byType, events.SessionCleared)
	assert.Equal(t, "r.txt", byType[events.DocumentUploaded].Payload()["name"])
}

func TestConsumerSkipsUndecodableMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	hub := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, NewConsumerService(pubSub, "t", hub, nil, logger.NewNopLogger()).Consume(ctx))

	require.NoError(t, pubSub.Publish("t", message.NewMessage(watermill.NewUUID(), []byte("{broken"))))
	publisher := NewPublisherService("t", pubSub, logger.NewNopLogger())
	publisher.PublishEvent(ctx, events.New(events.DocumentRemoved, nil))

	require.Eventually(t, func() bool { return hub.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPublishWithoutSubscribersDoesNotFail(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	publisher := NewPublisherService("nobody", pubSub, logger.NewNopLogger())
	assert.NoError(t, publisher.Publish(context.Background(), []byte(`{}`)))
}
