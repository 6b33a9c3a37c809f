package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-docchat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletions(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"answer"}}]}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf_token", srv.URL, "base-model", 0)
	text, err := p.Generate(context.Background(), "prompt", llm.WithModel("override"))

	require.NoError(t, err)
	assert.Equal(t, "answer", text)
	assert.Equal(t, "override", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.Equal(t, []llm.Message{{Role: "user", Content: "prompt"}}, got.Messages)
}

func TestChatCompletionsFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad token"}}`},
		{"error payload", http.StatusOK, `{"error":{"message":"overloaded"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"garbage", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHuggingFaceProvider("", srv.URL, "m", 10).Generate(context.Background(), "p")

			var provErr *llm.ProviderError
			require.True(t, errors.As(err, &provErr), "got %v", err)
			assert.Equal(t, tt.status, provErr.StatusCode)
		})
	}
}
