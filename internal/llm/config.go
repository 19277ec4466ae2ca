// Package llm provides the language model configuration and client abstractions
// behind the text generation facade.
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap completions such as interview questions
	TierLite ModelTier = "lite"
	// TierStandard is for longer drafting such as cover letters and tailoring advice
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (or any OpenAI-compatible endpoint)
	ProviderOpenAI Provider = "openai"
)

// DefaultTemperature keeps drafts varied without drifting off the inputs.
const DefaultTemperature = 0.7

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float64
	// BaseURL overrides the provider endpoint. Only used by ProviderOpenAI.
	BaseURL string
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o",
		},
		Temperature: DefaultTemperature,
	}
}

// ConfigFor returns the default configuration for a provider name.
// A non-empty model overrides every tier.
func ConfigFor(provider, model string, temperature float64) (*Config, error) {
	var cfg *Config
	switch Provider(strings.ToLower(strings.TrimSpace(provider))) {
	case ProviderGemini, "":
		cfg = DefaultGeminiConfig()
	case ProviderOpenAI:
		cfg = DefaultOpenAIConfig()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
	if model != "" {
		for tier := range cfg.Models {
			cfg.Models[tier] = model
		}
	}
	if temperature > 0 {
		cfg.Temperature = temperature
	}
	return cfg, nil
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
		BaseURL:     c.BaseURL,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
