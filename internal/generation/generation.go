// Package generation produces cover letters, tailoring advice and interview questions
// from a language model. It never fails: when the model is missing or errors, callers
// get UnavailableMessage.
package generation

import (
	"context"
	"time"

	"github.com/jonathan/job-assistant/internal/llm"
	"github.com/jonathan/job-assistant/internal/prompts"
	"go.uber.org/zap"
)

// Input budgets, in runes.
const (
	ResumeBudget      = 2000
	DescriptionBudget = 1500
	TitleBudget       = 200
)

// UnavailableMessage is returned in place of generated text when the model cannot be used.
const UnavailableMessage = "Text generation is unavailable right now. Please try again later."

const promptFile = "generation.json"

// Task names a generation template.
type Task string

const (
	TaskCoverLetter        Task = "cover_letter"
	TaskTailorResume       Task = "tailor_resume"
	TaskInterviewQuestions Task = "interview_questions"
)

// Option configures a Generator.
type Option func(*Generator)

// WithTier selects the model tier used for every task.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) { g.tier = tier }
}

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// Generator builds prompts and forwards them to the model.
type Generator struct {
	client  llm.Client
	logger  *zap.Logger
	tier    llm.ModelTier
	timeout time.Duration
}

// New returns a Generator. A nil client means the model failed to load.
func New(client llm.Client, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		client: client,
		logger: logger,
		tier:   llm.TierStandard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Available reports whether a model is loaded.
func (g *Generator) Available() bool {
	return g.client != nil
}

// CoverLetter drafts a cover letter for a job.
func (g *Generator) CoverLetter(ctx context.Context, resumeText, jobTitle, jobDescription string) string {
	return g.generate(ctx, TaskCoverLetter, map[string]string{
		"Resume":         Truncate(resumeText, ResumeBudget),
		"JobTitle":       Truncate(jobTitle, TitleBudget),
		"JobDescription": Truncate(jobDescription, DescriptionBudget),
	})
}

// TailorResume suggests résumé changes for a job description.
func (g *Generator) TailorResume(ctx context.Context, resumeText, jobDescription string) string {
	return g.generate(ctx, TaskTailorResume, map[string]string{
		"Resume":         Truncate(resumeText, ResumeBudget),
		"JobDescription": Truncate(jobDescription, DescriptionBudget),
	})
}

// InterviewQuestions lists likely interview questions for a job.
func (g *Generator) InterviewQuestions(ctx context.Context, jobTitle, jobDescription string) string {
	return g.generate(ctx, TaskInterviewQuestions, map[string]string{
		"JobTitle":       Truncate(jobTitle, TitleBudget),
		"JobDescription": Truncate(jobDescription, DescriptionBudget),
	})
}

// Prompt returns the exact prompt sent for a task.
func Prompt(task Task, data map[string]string) (string, error) {
	return prompts.Render(promptFile, string(task), data)
}

func (g *Generator) generate(ctx context.Context, task Task, data map[string]string) string {
	logger := g.logger.With(zap.String("task", string(task)))

	if g.client == nil {
		logger.Warn("text generation requested but no model is loaded")
		return UnavailableMessage
	}

	prompt, err := Prompt(task, data)
	if err != nil {
		logger.Error("failed to build prompt", zap.Error(err))
		return UnavailableMessage
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.client.GenerateContent(ctx, prompt, g.tier)
	if err != nil {
		logger.Warn("text generation failed", zap.Error(err))
		return UnavailableMessage
	}

	logger.Debug("generated text",
		zap.String("model", g.client.GetModel(g.tier)),
		zap.Int("prompt_runes", len([]rune(prompt))),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text
}

// Truncate returns at most limit runes of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
