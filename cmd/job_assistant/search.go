package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-assistant/internal/observability"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search every job board for a keyword",
	Long: "Query all configured job boards concurrently and print the merged listings, " +
		"up to five per board, in board order. Boards that fail contribute nothing.",
	RunE: runSearch,
}

var (
	searchKeyword  string
	searchLocation string
	searchJSON     bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchKeyword, "keyword", "k", "", "Search keyword (required)")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Location filter, for boards that support one")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print listings as JSON")
	_ = searchCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	keyword := strings.TrimSpace(searchKeyword)
	if keyword == "" {
		return fmt.Errorf("--keyword must not be empty")
	}

	agg, err := buildAggregator(appConfig, logger)
	if err != nil {
		return err
	}

	result := agg.SearchDetailed(cmd.Context(), keyword, strings.TrimSpace(searchLocation))
	out := cmd.OutOrStdout()

	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Listings)
	}

	printer := observability.NewPrinter(out)
	if appConfig.Verbose {
		printer.PrintSourceResults(result.Sources)
	}
	printer.PrintListings(result.Listings)
	return nil
}
