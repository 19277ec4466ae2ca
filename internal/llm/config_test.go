package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.InDelta(t, DefaultTemperature, config.Temperature, 1e-9)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	config := DefaultOpenAIConfig()
	config.BaseURL = "http://localhost:11434/v1"
	newConfig := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gpt-4o", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", newConfig.GetModel(TierStandard))
	assert.Equal(t, "gpt-4o-mini", newConfig.GetModel(TierLite))
	assert.Equal(t, config.BaseURL, newConfig.BaseURL)
	assert.InDelta(t, config.Temperature, newConfig.Temperature, 1e-9)
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		name         string
		provider     string
		model        string
		temperature  float64
		wantProvider Provider
		wantModel    string
		wantTemp     float64
	}{
		{"empty defaults to gemini", "", "", 0, ProviderGemini, "gemini-2.5-flash", DefaultTemperature},
		{"openai case-insensitive", " OpenAI ", "", 0.2, ProviderOpenAI, "gpt-4o", 0.2},
		{"model override", "gemini", "gemini-exp", 0, ProviderGemini, "gemini-exp", DefaultTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ConfigFor(tt.provider, tt.model, tt.temperature)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, cfg.Provider)
			assert.Equal(t, tt.wantModel, cfg.GetModel(TierStandard))
			assert.InDelta(t, tt.wantTemp, cfg.Temperature, 1e-9)
			if tt.model != "" {
				assert.Equal(t, tt.model, cfg.GetModel(TierLite))
			}
		})
	}

	_, err := ConfigFor("anthropic", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}
