// Package observability provides formatted text output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-assistant/internal/aggregate"
	"github.com/jonathan/job-assistant/internal/dashboard"
	"github.com/jonathan/job-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of the longest bar in a chart
	barWidth = 30
)

// Bar is one row of a text bar chart.
type Bar struct {
	Label string
	Value int
}

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to width runes, marking the cut with "...".
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(clip(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(clip(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintListings outputs search results, or a not-found notice.
func (p *Printer) PrintListings(listings []types.ListingRecord) {
	if len(listings) == 0 {
		p.printBox("JOB LISTINGS", "No jobs found")
		return
	}

	var sb strings.Builder
	for i, l := range listings {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, l.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s\n", l.Company, l.Source))
		sb.WriteString(fmt.Sprintf("    %s\n", l.URL))
		if i < len(listings)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("JOB LISTINGS (%d)", len(listings)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSourceResults outputs per-source counts and failures.
func (p *Printer) PrintSourceResults(results []aggregate.SourceResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		if r.Err != nil {
			sb.WriteString(fmt.Sprintf("✗ %-16s failed: %v\n", r.Source, r.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %-16s %d listings (%s)\n", r.Source, r.Count, r.Duration.Round(1e6)))
	}
	p.printBox("SOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the fields extracted from a résumé.
func (p *Printer) PrintProfile(profile types.ResumeProfile) {
	orDash := func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", orDash(profile.Name)))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", orDash(profile.Email)))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", orDash(profile.Phone)))
	sb.WriteString(fmt.Sprintf("Experience: %s years\n", orDash(profile.ExperienceYears)))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", orDash(profile.EducationLine)))
	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		for _, s := range profile.Skills {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	} else {
		sb.WriteString("Skills:     —\n")
	}

	p.printBox("RÉSUMÉ PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplications outputs the ledger rows with their indexes.
func (p *Printer) PrintApplications(rows []types.ApplicationRecord) {
	if len(rows) == 0 {
		p.printBox("APPLICATIONS", "No applications recorded yet")
		return
	}

	var sb strings.Builder
	for i, r := range rows {
		sb.WriteString(fmt.Sprintf("[%d] %s  %s - %s\n", i, r.Date, r.Company, r.Position))
		line := fmt.Sprintf("    %s", r.Status)
		if r.Platform != "" {
			line += " via " + r.Platform
		}
		if r.InterviewDate != "" {
			line += ", interview " + r.InterviewDate
		}
		sb.WriteString(line + "\n")
		if r.Response != "" {
			sb.WriteString(fmt.Sprintf("    Response: %s\n", r.Response))
		}
		if r.Notes != "" {
			sb.WriteString(fmt.Sprintf("    Notes: %s\n", strings.ReplaceAll(r.Notes, "\n", " ")))
		}
	}
	p.printBox(fmt.Sprintf("APPLICATIONS (%d)", len(rows)), strings.TrimSuffix(sb.String(), "\n"))
}

// BarChart renders bars scaled to the largest value.
func BarChart(bars []Bar) string {
	if len(bars) == 0 {
		return "(no data)"
	}

	maxValue, labelWidth := 0, 0
	for _, b := range bars {
		maxValue = max(maxValue, b.Value)
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
	}
	labelWidth = min(labelWidth, 16)

	var sb strings.Builder
	for i, b := range bars {
		n := 0
		if maxValue > 0 {
			n = b.Value * barWidth / maxValue
		}
		if b.Value > 0 && n == 0 {
			n = 1
		}
		sb.WriteString(fmt.Sprintf("%s %s %d", pad(clip(b.Label, labelWidth), labelWidth), strings.Repeat("█", n), b.Value))
		if i < len(bars)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// PrintBarChart outputs a titled text bar chart.
func (p *Printer) PrintBarChart(title string, bars []Bar) {
	p.printBox(title, BarChart(bars))
}

// CountBars converts dashboard tallies to bars.
func CountBars(counts []dashboard.Count) []Bar {
	bars := make([]Bar, len(counts))
	for i, c := range counts {
		bars[i] = Bar{Label: c.Label, Value: c.Count}
	}
	return bars
}

// PrintDashboard outputs the ledger summary and its charts.
func (p *Printer) PrintDashboard(s dashboard.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total applications: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("Response rate:      %.0f%%\n", s.ResponseRate*100))
	sb.WriteString(fmt.Sprintf("Interview rate:     %.0f%%", s.InterviewRate*100))
	if len(s.Upcoming) > 0 {
		sb.WriteString("\n\nUpcoming interviews:")
		for _, u := range s.Upcoming {
			sb.WriteString(fmt.Sprintf("\n  %s  %s - %s", u.Date, u.Company, u.Position))
		}
	}
	p.printBox("DASHBOARD", sb.String())

	if s.Total == 0 {
		return
	}
	p.PrintBarChart("BY STATUS", CountBars(s.ByStatus))
	p.PrintBarChart("BY PLATFORM", CountBars(s.ByPlatform))
}

// PrintText outputs a block of generated text under a title.
func (p *Printer) PrintText(title, text string) {
	p.printBox(title, strings.TrimRight(text, "\n"))
}
