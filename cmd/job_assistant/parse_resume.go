package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/jonathan/job-assistant/internal/resume"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume <file>",
	Short: "Extract text and a profile from a PDF or DOCX résumé",
	Long: "Read a PDF or DOCX résumé and print the fields found in it: name, email, phone, " +
		"skills, years of experience and education. Missing fields are left empty.",
	Args: cobra.ExactArgs(1),
	RunE: runParseResume,
}

var (
	parseResumeJSON bool
	parseResumeText bool
)

func init() {
	parseResumeCmd.Flags().BoolVar(&parseResumeJSON, "json", false, "Print the profile as JSON")
	parseResumeCmd.Flags().BoolVar(&parseResumeText, "text", false, "Also print the extracted text")

	rootCmd.AddCommand(parseResumeCmd)
}

// readResume loads and parses a résumé file.
func readResume(path string) (string, types.ResumeProfile, error) {
	ext := filepath.Ext(path)
	// Unsupported formats are rejected before the file is read.
	if _, err := resume.ParseFormat(ext); err != nil {
		return "", types.ResumeProfile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", types.ResumeProfile{}, fmt.Errorf("failed to read résumé: %w", err)
	}
	return resume.Parse(data, ext)
}

func runParseResume(cmd *cobra.Command, args []string) error {
	text, profile, err := readResume(args[0])
	if err != nil {
		if errors.Is(err, resume.ErrUnsupportedFormat) {
			return fmt.Errorf("%w; convert the résumé to PDF or DOCX", err)
		}
		return err
	}
	logger.Debug("résumé parsed", zap.String("file", args[0]), zap.Int("characters", len([]rune(text))))

	out := cmd.OutOrStdout()
	if parseResumeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	printer := observability.NewPrinter(out)
	printer.PrintProfile(profile)
	if text == "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no text could be extracted (scanned or corrupt document?)")
	}
	if parseResumeText || appConfig.Verbose {
		printer.PrintText("EXTRACTED TEXT", text)
	}
	return nil
}
