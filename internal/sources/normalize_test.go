package sources

import (
	"fmt"
	"testing"

	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	board := Board{Name: "acme", BaseURL: "https://jobs.acme.test/board/"}
	raw := []RawListing{
		{Title: "  Backend   Engineer ", Company: " Acme ", Link: "/jobs/1"},
		{Title: "", Company: "NoTitle", Link: "/jobs/2"},
		{Title: "No Link", Company: "Acme"},
		{Title: "Relative", Link: "jobs/3"},
		{Title: "Absolute", Company: "Other", Link: "https://elsewhere.test/p/9"},
		{Title: "Script", Link: "javascript:void(0)"},
	}

	got := Normalize(board, raw)
	assert.Equal(t, []types.ListingRecord{
		{Title: "Backend Engineer", Company: "Acme", Source: "acme", URL: "https://jobs.acme.test/jobs/1"},
		{Title: "Relative", Company: types.UnknownCompany, Source: "acme", URL: "https://jobs.acme.test/board/jobs/3"},
		{Title: "Absolute", Company: "Other", Source: "acme", URL: "https://elsewhere.test/p/9"},
	}, got)

	for _, l := range got {
		require.NoError(t, l.Validate())
	}
}

func TestNormalize_TruncatesToMaxPerSource(t *testing.T) {
	board := Board{Name: "acme", BaseURL: "https://acme.test"}
	var raw []RawListing
	for i := 0; i < 8; i++ {
		raw = append(raw, RawListing{Title: fmt.Sprintf("Job %d", i), Link: fmt.Sprintf("/j/%d", i)})
	}

	got := Normalize(board, raw)
	require.Len(t, got, MaxPerSource)
	assert.Equal(t, "Job 0", got[0].Title)
	assert.Equal(t, "Job 4", got[4].Title)
}

func TestNormalize_RelativeLinkWithoutBase(t *testing.T) {
	got := Normalize(Board{Name: "acme"}, []RawListing{{Title: "t", Link: "/j/1"}})
	assert.Empty(t, got)
}

func TestNormalize_Empty(t *testing.T) {
	got := Normalize(Board{Name: "acme"}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
