package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-docchat-be/pkg/llm"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	genaiopt "google.golang.org/api/option"
)

const providerName = "gemini"

// chatRequest is one Gemini call: prior turns plus the message to send.
type chatRequest struct {
	Model       string
	MaxTokens   int
	Temperature float64
	System      *genai.Content
	History     []*genai.Content
	Last        *genai.Content
}

type sendFunc func(ctx context.Context, req *chatRequest) (*genai.GenerateContentResponse, error)

type GeminiProvider struct {
	client    *genai.Client
	send      sendFunc
	model     string
	maxTokens int
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, baseURL, model string, maxTokens int) (*GeminiProvider, error) {
	clientOpts := []genaiopt.ClientOption{genaiopt.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, genaiopt.WithEndpoint(baseURL))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	p := &GeminiProvider{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
	p.send = p.sendChat
	return p, nil
}

func (p *GeminiProvider) sendChat(ctx context.Context, req *chatRequest) (*genai.GenerateContentResponse, error) {
	model := p.client.GenerativeModel(req.Model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	model.SystemInstruction = req.System

	cs := model.StartChat()
	cs.History = req.History
	return cs.SendMessage(ctx, req.Last.Parts...)
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{Role: role, Parts: []genai.Part{genai.Text(text)}}
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", llm.NewProviderError(providerName, 0, errors.New("empty history"))
	}

	opts := llm.ApplyOptions(llm.Options{
		Model:     p.model,
		MaxTokens: p.maxTokens,
	}, options...)

	req := &chatRequest{
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	var turns []*genai.Content
	for _, msg := range history {
		switch msg.Role {
		case "system":
			req.System = textContent("user", msg.Content)
		case "assistant", "model":
			turns = append(turns, textContent("model", msg.Content))
		default:
			turns = append(turns, textContent("user", msg.Content))
		}
	}
	if len(turns) == 0 {
		return "", llm.NewProviderError(providerName, 0, errors.New("no user message"))
	}
	req.History = turns[:len(turns)-1]
	req.Last = turns[len(turns)-1]

	rsp, err := p.send(ctx, req)
	if err != nil {
		status := 0
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		}
		return "", llm.NewProviderError(providerName, status, err)
	}

	if rsp == nil || len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return "", llm.NewProviderError(providerName, 0, errors.New("no candidates returned"))
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
