package service

import (
	"context"
	"sync"

	"ai-docchat-be/pkg/events"
	"ai-docchat-be/pkg/llm"
)

type fakeProvider struct {
	mu      sync.Mutex
	answer  string
	err     error
	block   bool
	prompts []string
	models  []string
	onCall  func()
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, options...)
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{}, options...)

	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, opts.Model)
	onCall := f.onCall
	f.mu.Unlock()

	if onCall != nil {
		onCall()
	}
	if f.block {
		<-ctx.Done()
		return "", llm.NewProviderError("fake", 0, ctx.Err())
	}
	return f.answer, f.err
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	return nil
}

func (f *fakePublisher) PublishEvent(ctx context.Context, evt events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.EventType())
	}
	return out
}
