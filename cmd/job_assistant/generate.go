package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter for a job",
	RunE:  runCoverLetter,
}

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Suggest résumé changes for a job description",
	RunE:  runTailor,
}

var interviewQuestionsCmd = &cobra.Command{
	Use:   "interview-questions",
	Short: "List likely interview questions for a job",
	RunE:  runInterviewQuestions,
}

// jobInput holds the flags shared by the generation commands.
type jobInput struct {
	resumePath      string
	title           string
	description     string
	descriptionFile string
	jobURL          string
}

var genInput jobInput

func init() {
	for _, c := range []*cobra.Command{coverLetterCmd, tailorCmd, interviewQuestionsCmd} {
		c.Flags().StringVar(&genInput.description, "description", "", "Job description text")
		c.Flags().StringVar(&genInput.descriptionFile, "description-file", "", "Read the job description from a file")
		c.Flags().StringVar(&genInput.jobURL, "job-url", "", "Fetch the job description from a posting URL")
		c.MarkFlagsMutuallyExclusive("description", "description-file", "job-url")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{coverLetterCmd, tailorCmd} {
		c.Flags().StringVarP(&genInput.resumePath, "resume", "r", "", "Résumé file, PDF or DOCX (required)")
		_ = c.MarkFlagRequired("resume")
	}
	for _, c := range []*cobra.Command{coverLetterCmd, interviewQuestionsCmd} {
		c.Flags().StringVarP(&genInput.title, "title", "t", "", "Job title (required)")
		_ = c.MarkFlagRequired("title")
	}
}

// resolveDescription returns the job description from whichever source was given.
func resolveDescription(ctx context.Context, in jobInput) (string, error) {
	switch {
	case in.descriptionFile != "":
		data, err := os.ReadFile(in.descriptionFile)
		if err != nil {
			return "", fmt.Errorf("failed to read description file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case in.jobURL != "":
		text, platform, err := fetch.Description(ctx, in.jobURL, fetchOptions(appConfig))
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		logger.Debug("fetched job description", zap.String("platform", string(platform)), zap.Int("characters", len(text)))
		return text, nil
	default:
		return strings.TrimSpace(in.description), nil
	}
}

// resumeText loads the résumé for commands that need one.
func resumeText(path string) (string, error) {
	text, _, err := readResume(path)
	if err != nil {
		return "", err
	}
	if text == "" {
		logger.Warn("no text extracted from résumé", zap.String("file", path))
	}
	return text, nil
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	text, err := resumeText(genInput.resumePath)
	if err != nil {
		return err
	}
	description, err := resolveDescription(ctx, genInput)
	if err != nil {
		return err
	}

	gen, release := buildGenerator(ctx, appConfig, logger)
	defer release()

	letter := gen.CoverLetter(ctx, text, genInput.title, description)
	observability.NewPrinter(cmd.OutOrStdout()).PrintText("COVER LETTER", letter)
	return nil
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	text, err := resumeText(genInput.resumePath)
	if err != nil {
		return err
	}
	description, err := resolveDescription(ctx, genInput)
	if err != nil {
		return err
	}
	if description == "" {
		return fmt.Errorf("a job description is required (--description, --description-file or --job-url)")
	}

	gen, release := buildGenerator(ctx, appConfig, logger)
	defer release()

	advice := gen.TailorResume(ctx, text, description)
	observability.NewPrinter(cmd.OutOrStdout()).PrintText("TAILORING SUGGESTIONS", advice)
	return nil
}

func runInterviewQuestions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	description, err := resolveDescription(ctx, genInput)
	if err != nil {
		return err
	}

	gen, release := buildGenerator(ctx, appConfig, logger)
	defer release()

	questions := gen.InterviewQuestions(ctx, genInput.title, description)
	observability.NewPrinter(cmd.OutOrStdout()).PrintText("INTERVIEW QUESTIONS", questions)
	return nil
}
