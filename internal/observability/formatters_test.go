package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/job-assistant/internal/aggregate"
	"github.com/jonathan/job-assistant/internal/dashboard"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func assertBoxLinesAligned(t *testing.T, output string) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintListings([]types.ListingRecord{
		{Title: "Go Engineer", Company: "Acme", Source: types.SourceLinkedIn, URL: "https://www.linkedin.com/jobs/view/1"},
		{Title: "SRE", Company: "Unknown", Source: types.SourceRemoteOK, URL: "https://remoteok.com/remote-jobs/2"},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB LISTINGS (2)")
	assert.Contains(t, output, "#1  Go Engineer")
	assert.Contains(t, output, "Acme · linkedin")
	assert.Contains(t, output, "https://remoteok.com/remote-jobs/2")
	assertBoxLinesAligned(t, output)
}

func TestPrintListings_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintListings(nil)
	assert.Contains(t, buf.String(), "No jobs found")
}

func TestPrintSourceResults(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSourceResults([]aggregate.SourceResult{
		{Source: "linkedin", Count: 5, Duration: 1500 * time.Millisecond},
		{Source: "indeed", Err: errors.New("HTTP status 403")},
	})
	output := buf.String()
	assert.Contains(t, output, "✓ linkedin")
	assert.Contains(t, output, "5 listings (1.5s)")
	assert.Contains(t, output, "✗ indeed")
	assert.Contains(t, output, "HTTP status 403")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(types.ResumeProfile{
		Name:            "John Smith",
		Email:           "john.smith@mail.com",
		Skills:          []string{"Python", "Teamwork"},
		ExperienceYears: "5",
	})
	output := buf.String()

	assert.Contains(t, output, "RÉSUMÉ PROFILE")
	assert.Contains(t, output, "John Smith")
	assert.Contains(t, output, "Phone:      —")
	assert.Contains(t, output, "• Teamwork")
	assertBoxLinesAligned(t, output)
}

func TestPrintApplications(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintApplications([]types.ApplicationRecord{
		{Date: "2026-01-05", Company: "Acme", Position: "SRE", Platform: "indeed", Status: types.StatusInterview,
			InterviewDate: "2026-01-20", Notes: "two\nlines"},
	})
	output := buf.String()
	assert.Contains(t, output, "[0] 2026-01-05  Acme - SRE")
	assert.Contains(t, output, "Interview via indeed, interview 2026-01-20")
	assert.Contains(t, output, "Notes: two lines")
}

func TestPrintApplications_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintApplications(nil)
	assert.Contains(t, buf.String(), "No applications recorded yet")
}

func TestBarChart(t *testing.T) {
	chart := BarChart([]Bar{{"Applied", 10}, {"Offer", 1}, {"Ghosted", 0}})
	lines := strings.Split(chart, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Applied "+strings.Repeat("█", barWidth)+" 10", lines[0])
	assert.Equal(t, "Offer   "+strings.Repeat("█", 3)+" 1", lines[1])
	assert.Equal(t, "Ghosted  0", lines[2])

	assert.Equal(t, "(no data)", BarChart(nil))
}

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	s := dashboard.Summary{
		Total:         2,
		ByStatus:      []dashboard.Count{{Label: "Applied", Count: 1}, {Label: "Interview", Count: 1}},
		ByPlatform:    []dashboard.Count{{Label: "linkedin", Count: 2}},
		ResponseRate:  0.5,
		InterviewRate: 0.5,
		Upcoming:      []dashboard.Upcoming{{Company: "Acme", Position: "SRE", Date: "2026-02-01"}},
	}
	NewPrinter(&buf).PrintDashboard(s)
	output := buf.String()

	assert.Contains(t, output, "Total applications: 2")
	assert.Contains(t, output, "Response rate:      50%")
	assert.Contains(t, output, "2026-02-01  Acme - SRE")
	assert.Contains(t, output, "BY STATUS")
	assert.Contains(t, output, "BY PLATFORM")
	assertBoxLinesAligned(t, output)
}

func TestPrintDashboard_EmptySkipsCharts(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDashboard(dashboard.Summary{})
	assert.NotContains(t, buf.String(), "BY STATUS")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "ééé...", clip("éééééééé", 6))
}
