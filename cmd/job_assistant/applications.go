package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/job-assistant/internal/ledger"
	"github.com/jonathan/job-assistant/internal/notify"
	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Record a submitted application",
	Long:  "Append an application to the ledger with status Applied and today's date, then send a confirmation if notifications are configured.",
	RunE:  runApply,
}

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List, update or export recorded applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded applications",
	RunE:  runApplicationsList,
}

var applicationsUpdateCmd = &cobra.Command{
	Use:   "update <index>",
	Short: "Change the status, response, interview date or notes of an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsUpdate,
}

var applicationsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ledger as CSV to stdout",
	RunE:  runApplicationsExport,
}

var (
	applyCompany  string
	applyPosition string
	applyPlatform string
	applyNotes    string

	listJSON bool

	updateStatus        string
	updateResponse      string
	updateInterviewDate string
	updateNotes         string
)

func init() {
	applyCmd.Flags().StringVar(&applyCompany, "company", "", "Company name (required)")
	applyCmd.Flags().StringVar(&applyPosition, "position", "", "Position title (required)")
	applyCmd.Flags().StringVar(&applyPlatform, "platform", "", "Where the job was found, e.g. linkedin")
	applyCmd.Flags().StringVar(&applyNotes, "notes", "", "Free-form notes")
	_ = applyCmd.MarkFlagRequired("company")
	_ = applyCmd.MarkFlagRequired("position")

	applicationsListCmd.Flags().BoolVar(&listJSON, "json", false, "Print applications as JSON")

	applicationsUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "Applied, Interview, Offer, Rejected or Ghosted")
	applicationsUpdateCmd.Flags().StringVar(&updateResponse, "response", "", "Employer response")
	applicationsUpdateCmd.Flags().StringVar(&updateInterviewDate, "interview-date", "", "Interview date, YYYY-MM-DD")
	applicationsUpdateCmd.Flags().StringVar(&updateNotes, "notes", "", "Replace the notes")

	applicationsCmd.AddCommand(applicationsListCmd, applicationsUpdateCmd, applicationsExportCmd)
	rootCmd.AddCommand(applyCmd, applicationsCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	led, release, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	index, rec, err := led.Apply(ctx, ledger.ApplyInput{
		Company:  applyCompany,
		Position: applyPosition,
		Platform: applyPlatform,
		Notes:    applyNotes,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Recorded application #%d: %s at %s (%s)\n", index, rec.Position, rec.Company, rec.Date)

	msg := notify.ApplicationConfirmation(appConfig.NotifyEmail, rec.Company, rec.Position, rec.Date)
	if warning := notify.Send(ctx, buildNotifier(appConfig, logger), msg, logger); warning != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}
	return nil
}

func runApplicationsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	led, release, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(led.Rows())
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintApplications(led.Rows())
	return nil
}

// updatePatch builds a patch from the flags the user actually set.
func updatePatch(cmd *cobra.Command) (ledger.Patch, error) {
	var patch ledger.Patch
	flags := cmd.Flags()

	if flags.Changed("status") {
		status, err := types.ParseStatus(updateStatus)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	if flags.Changed("response") {
		patch.Response = &updateResponse
	}
	if flags.Changed("interview-date") {
		patch.InterviewDate = &updateInterviewDate
	}
	if flags.Changed("notes") {
		patch.Notes = &updateNotes
	}
	if patch.Empty() {
		return patch, fmt.Errorf("nothing to update: set --status, --response, --interview-date or --notes")
	}
	return patch, nil
}

func runApplicationsUpdate(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	patch, err := updatePatch(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	led, release, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	rec, err := led.Update(ctx, index, patch)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated application #%d: %s at %s is now %s\n", index, rec.Position, rec.Company, rec.Status)
	return nil
}

func runApplicationsExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	led, release, err := openLedger(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write(led.Columns()); err != nil {
		return err
	}
	for _, rec := range led.Rows() {
		if err := w.Write(rec.Row()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
