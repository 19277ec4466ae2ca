// Package main provides the entry point for the job assistant CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "job_assistant",
	Short: "Personal job-search assistant",
	Long: "Job Assistant searches public job boards, extracts a profile from your résumé, " +
		"drafts cover letters and interview questions with a language model, and tracks your applications.",
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	configPath string
	verbose    bool
	logLevel   string
)

// Set by setupApp before any subcommand runs.
var (
	appConfig *config.Config
	logger    *zap.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output and human-readable logs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

func setupApp(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	l, err := logging.New(cfg.LogLevel, cfg.Verbose)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
