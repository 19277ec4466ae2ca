package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient implements Client through langchaingo's OpenAI model.
// One langchaingo model is built per tier on first use.
type OpenAIClient struct {
	config *Config
	apiKey string

	mu     sync.Mutex
	models map[string]llms.Model
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &OpenAIClient{
		config: config,
		apiKey: apiKey,
		models: make(map[string]llms.Model),
	}, nil
}

func (c *OpenAIClient) model(name string) (llms.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.models[name]; ok {
		return m, nil
	}

	opts := []openai.Option{
		openai.WithToken(c.apiKey),
		openai.WithModel(name),
	}
	if c.config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(c.config.BaseURL))
	}
	m, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	c.models[name] = m
	return m, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName, err := modelFor(c.config, tier)
	if err != nil {
		return "", err
	}

	m, err := c.model(modelName)
	if err != nil {
		return "", err
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, m, prompt,
		llms.WithTemperature(c.config.Temperature),
		llms.WithCandidateCount(1),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP transport is shared.
func (c *OpenAIClient) Close() error {
	return nil
}
