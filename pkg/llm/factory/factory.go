package factory

import (
	"context"
	"fmt"
	"strings"

	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/anthropic"
	"ai-docchat-be/pkg/llm/gemini"
	"ai-docchat-be/pkg/llm/huggingface"
	"ai-docchat-be/pkg/llm/ollama"
	"ai-docchat-be/pkg/llm/openai"
)

type Settings struct {
	Provider  string
	Model     string
	BaseURL   string
	APIKey    string
	MaxTokens int
}

func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, error) {
	switch strings.ToLower(s.Provider) {
	case "ollama":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model, s.MaxTokens), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(s.APIKey, s.BaseURL, s.Model, s.MaxTokens), nil
	case "openai":
		if s.APIKey == "" && s.BaseURL == "" {
			return nil, fmt.Errorf("openai provider requires LLM_API_KEY")
		}
		return openai.NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model, s.MaxTokens), nil
	case "anthropic":
		if s.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires LLM_API_KEY")
		}
		return anthropic.NewAnthropicProvider(s.APIKey, s.BaseURL, s.Model, s.MaxTokens), nil
	case "gemini", "google":
		if s.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires LLM_API_KEY")
		}
		return gemini.NewGeminiProvider(ctx, s.APIKey, s.BaseURL, s.Model, s.MaxTokens)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
