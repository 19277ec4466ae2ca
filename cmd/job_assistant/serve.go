package main

import (
	"fmt"

	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/reminders"
	"github.com/jonathan/job-assistant/internal/server"
	"github.com/jonathan/job-assistant/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort      int
	serveReminders bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes job search, résumé parsing, text generation and the application ledger.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveReminders, "reminders", true, "Run the interview reminder scheduler when notifications are configured")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	agg, err := buildAggregator(appConfig, logger)
	if err != nil {
		return err
	}

	gen, releaseModel := buildGenerator(ctx, appConfig, logger)
	defer releaseModel()

	led, releaseLedger, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer releaseLedger()

	sessions, releaseSessions, err := buildSessions(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer releaseSessions()

	notifier := buildNotifier(appConfig, logger)
	if notifier != nil && serveReminders {
		checker := reminders.NewChecker(led.Rows, notifier, appConfig.NotifyEmail, appConfig.ReminderDays, logger)
		scheduler := reminders.NewScheduler(checker, appConfig.ReminderSchedule, logger)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:       port,
		Aggregator: agg,
		Generator:  gen,
		Ledger:     led,
		Sessions:   sessions,
		Notifier:   notifier,
		NotifyTo:   appConfig.NotifyEmail,
		JWT:        jwtConfig,
		RateLimit:  ratelimit.LoadConfig(appConfig.RateLimitPerMinute),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving", zap.Int("port", port), zap.Bool("model_available", gen.Available()))
	return srv.Start(ctx)
}
