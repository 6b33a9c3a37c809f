package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ai-docchat-be/pkg/llm"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type fakeChat struct {
	req *chatRequest
	rsp *genai.GenerateContentResponse
	err error
}

func (f *fakeChat) send(ctx context.Context, req *chatRequest) (*genai.GenerateContentResponse, error) {
	f.req = req
	return f.rsp, f.err
}

func answer(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func newTestProvider(fake *fakeChat) *GeminiProvider {
	return &GeminiProvider{model: "gemini-1.5-flash", maxTokens: 256, send: fake.send}
}

func partText(t *testing.T, c *genai.Content) string {
	t.Helper()
	require.NotNil(t, c)
	require.Len(t, c.Parts, 1)
	text, ok := c.Parts[0].(genai.Text)
	require.True(t, ok)
	return string(text)
}

func TestChatRejectsEmptyHistory(t *testing.T) {
	p := &GeminiProvider{model: "gemini-1.5-flash"}

	_, err := p.Chat(context.Background(), nil)

	var provErr *llm.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "gemini", provErr.Provider)
}

func TestGenerateSendsPromptAsUserTurn(t *testing.T) {
	fake := &fakeChat{rsp: answer(genai.Text("The total "), genai.Text("is $212.40."))}
	p := newTestProvider(fake)

	out, err := p.Generate(context.Background(), "What is the total?", llm.WithModel("gemini-pro"))

	require.NoError(t, err)
	assert.Equal(t, "The total is $212.40.", out)
	require.NotNil(t, fake.req)
	assert.Equal(t, "gemini-pro", fake.req.Model)
	assert.Equal(t, 256, fake.req.MaxTokens)
	assert.Empty(t, fake.req.History)
	assert.Nil(t, fake.req.System)
	assert.Equal(t, "user", fake.req.Last.Role)
	assert.Equal(t, "What is the total?", partText(t, fake.req.Last))
}

func TestChatMapsRoles(t *testing.T) {
	fake := &fakeChat{rsp: answer(genai.Text("ok"))}
	p := newTestProvider(fake)

	_, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "bye"},
	}, llm.WithTemperature(0.3))

	require.NoError(t, err)
	assert.Equal(t, "be brief", partText(t, fake.req.System))
	require.Len(t, fake.req.History, 2)
	assert.Equal(t, "user", fake.req.History[0].Role)
	assert.Equal(t, "model", fake.req.History[1].Role)
	assert.Equal(t, "hello", partText(t, fake.req.History[1]))
	assert.Equal(t, "bye", partText(t, fake.req.Last))
	assert.InDelta(t, 0.3, fake.req.Temperature, 1e-9)
}

func TestChatFailures(t *testing.T) {
	tests := []struct {
		name   string
		fake   *fakeChat
		status int
	}{
		{"api error", &fakeChat{err: &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"}}, http.StatusTooManyRequests},
		{"transport error", &fakeChat{err: errors.New("connection reset")}, 0},
		{"no candidates", &fakeChat{rsp: &genai.GenerateContentResponse{}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestProvider(tt.fake).Generate(context.Background(), "q")

			var provErr *llm.ProviderError
			require.True(t, errors.As(err, &provErr))
			assert.Equal(t, "gemini", provErr.Provider)
			assert.Equal(t, tt.status, provErr.StatusCode)
		})
	}
}

func TestCloseWithoutClient(t *testing.T) {
	assert.NoError(t, (&GeminiProvider{}).Close())
}
