package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func TestCoverLetter_ReturnsModelOutputVerbatim(t *testing.T) {
	client := &fakeClient{response: "  Dear team,\n\nI am excited...  "}
	g := New(client, nil)

	out := g.CoverLetter(context.Background(), "Go developer, 5 years", "Backend Engineer", "Build APIs")
	assert.Equal(t, "  Dear team,\n\nI am excited...  ", out)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Job title: Backend Engineer")
	assert.Contains(t, prompt, "Build APIs")
	assert.Contains(t, prompt, "Go developer, 5 years")
	assert.Equal(t, llm.TierStandard, client.tiers[0])
}

func TestTailorResume_PromptOmitsTitle(t *testing.T) {
	client := &fakeClient{response: "- emphasize Kubernetes"}
	out := New(client, nil).TailorResume(context.Background(), "my resume", "needs kubernetes")
	assert.Equal(t, "- emphasize Kubernetes", out)
	assert.Contains(t, client.prompts[0], "needs kubernetes")
	assert.Contains(t, client.prompts[0], "my resume")
	assert.NotContains(t, client.prompts[0], "{{.")
}

func TestInterviewQuestions_UsesTier(t *testing.T) {
	client := &fakeClient{response: "1. Why Go?"}
	out := New(client, nil, WithTier(llm.TierLite)).InterviewQuestions(context.Background(), "SRE", "on-call")
	assert.Equal(t, "1. Why Go?", out)
	assert.Equal(t, llm.TierLite, client.tiers[0])
}

func TestGenerate_TruncatesInputs(t *testing.T) {
	client := &fakeClient{response: "ok"}
	g := New(client, nil)

	longResume := strings.Repeat("é", ResumeBudget+50)
	longDesc := strings.Repeat("d", DescriptionBudget+10)
	longTitle := strings.Repeat("t", TitleBudget+1)

	g.CoverLetter(context.Background(), longResume, longTitle, longDesc)
	prompt := client.prompts[0]

	assert.Contains(t, prompt, strings.Repeat("é", ResumeBudget))
	assert.NotContains(t, prompt, strings.Repeat("é", ResumeBudget+1))
	assert.Contains(t, prompt, strings.Repeat("d", DescriptionBudget))
	assert.NotContains(t, prompt, strings.Repeat("d", DescriptionBudget+1))
	assert.NotContains(t, prompt, strings.Repeat("t", TitleBudget+1))
	assert.True(t, utf8.ValidString(prompt))
}

func TestGenerate_UnavailableModel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	g := New(nil, zap.New(core))

	assert.False(t, g.Available())
	assert.Equal(t, UnavailableMessage, g.CoverLetter(context.Background(), "r", "t", "d"))
	assert.Equal(t, UnavailableMessage, g.TailorResume(context.Background(), "r", "d"))
	assert.Equal(t, UnavailableMessage, g.InterviewQuestions(context.Background(), "t", "d"))
	assert.Equal(t, 3, logs.Len())
}

func TestGenerate_ModelErrorFallsBack(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	g := New(client, nil)
	assert.True(t, g.Available())
	assert.Equal(t, UnavailableMessage, g.InterviewQuestions(context.Background(), "t", "d"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"abc", 0, ""},
		{"", 4, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.limit))
	}
}

func TestPrompt_UnknownTask(t *testing.T) {
	_, err := Prompt("summary", map[string]string{})
	require.Error(t, err)
}
