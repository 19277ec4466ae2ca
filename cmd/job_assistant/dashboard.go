package main

import (
	"encoding/json"
	"time"

	"github.com/jonathan/job-assistant/internal/dashboard"
	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summarize recorded applications with charts",
	RunE:  runDashboard,
}

var dashboardJSON bool

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Print the summary as JSON")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	led, release, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	summary := dashboard.Summarize(led.Rows(), time.Now())
	if dashboardJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintDashboard(summary)
	return nil
}
