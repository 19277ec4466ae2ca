package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	for _, cfg := range []*Config{DefaultGeminiConfig(), DefaultOpenAIConfig()} {
		t.Run(string(cfg.Provider), func(t *testing.T) {
			client, err := NewClient(context.Background(), cfg, "")
			require.ErrorIs(t, err, ErrMissingAPIKey)
			assert.Nil(t, client)
		})
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "anthropic"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestOpenAIClient_GenerateContent(t *testing.T) {
	var gotAuth, gotModel, gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		if len(body.Messages) > 0 {
			gotPrompt = body.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Dear hiring manager"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 3, "total_tokens": 6}
		}`))
	}))
	defer server.Close()

	cfg := DefaultOpenAIConfig()
	cfg.BaseURL = server.URL
	client, err := NewClient(context.Background(), cfg, "sk-test")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	text, err := client.GenerateContent(context.Background(), "Write a cover letter", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "Dear hiring manager", text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotModel)
	assert.Equal(t, "Write a cover letter", gotPrompt)
	assert.Equal(t, "gpt-4o-mini", client.GetModel(TierLite))
}

func TestOpenAIClient_NoModelForTier(t *testing.T) {
	client, err := NewOpenAIClient(&Config{Provider: ProviderOpenAI, Models: map[ModelTier]string{}}, "sk-test")
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "p", TierStandard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model configured")
}

func TestCandidateText(t *testing.T) {
	text, err := candidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("Dear "), genai.Text("team")}},
	}}})
	require.NoError(t, err)
	assert.Equal(t, "Dear team", text)

	_, err = candidateText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = candidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		FinishReason: genai.FinishReasonSafety,
	}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Contains(t, err.Error(), "safety")

	_, err = candidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}},
	}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
