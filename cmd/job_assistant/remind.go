package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/job-assistant/internal/reminders"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send reminders for upcoming interviews",
	Long: "Check the ledger for applications in Interview status whose interview date is within the " +
		"reminder window and send one notification per interview. With --watch, keep running on the " +
		"configured cron schedule.",
	RunE: runRemind,
}

var (
	remindWatch  bool
	remindDryRun bool
)

func init() {
	remindCmd.Flags().BoolVar(&remindWatch, "watch", false, "Keep running and check on the reminder schedule")
	remindCmd.Flags().BoolVar(&remindDryRun, "dry-run", false, "List due interviews without sending anything")
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	led, release, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	out := cmd.OutOrStdout()
	if remindDryRun {
		due := reminders.Due(led.Rows(), time.Now(), appConfig.ReminderDays)
		if len(due) == 0 {
			_, _ = fmt.Fprintln(out, "No interviews due")
			return nil
		}
		for _, d := range due {
			_, _ = fmt.Fprintf(out, "[%d] %s  %s - %s\n", d.Index, d.Record.InterviewDate, d.Record.Company, d.Record.Position)
		}
		return nil
	}

	notifier := buildNotifier(appConfig, logger)
	if notifier == nil {
		return fmt.Errorf("no notification channel configured (set SMTP_* or TELEGRAM_* settings)")
	}
	checker := reminders.NewChecker(led.Rows, notifier, appConfig.NotifyEmail, appConfig.ReminderDays, logger)

	if !remindWatch {
		sent := checker.Check(ctx)
		_, _ = fmt.Fprintf(out, "Sent %d reminder(s)\n", sent)
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := reminders.NewScheduler(checker, appConfig.ReminderSchedule, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
