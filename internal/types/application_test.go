//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, st := range Statuses() {
		got, err := ParseStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	got, err := ParseStatus("  interview ")
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, got)

	_, err = ParseStatus("Pending")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusOffer.Valid())
	assert.False(t, Status("offer").Valid())
	assert.False(t, Status("").Valid())
}

func TestApplicationRecord_Validate(t *testing.T) {
	valid := ApplicationRecord{
		Date:     "2026-10-14",
		Company:  "Acme",
		Position: "Backend Engineer",
		Platform: "linkedin",
		Status:   StatusApplied,
	}
	assert.NoError(t, valid.Validate())

	badStatus := valid
	badStatus.Status = "Pending"
	assert.Error(t, badStatus.Validate())

	badDate := valid
	badDate.Date = "14/10/2026"
	assert.Error(t, badDate.Validate())

	withInterview := valid
	withInterview.InterviewDate = "2026-10-20"
	assert.NoError(t, withInterview.Validate())

	badInterview := valid
	badInterview.InterviewDate = "next week"
	assert.Error(t, badInterview.Validate())
}

func TestApplicationRecord_RowRoundTrip(t *testing.T) {
	rec := ApplicationRecord{
		Date:          "2026-10-14",
		Company:       "Acme, Inc.",
		Position:      "SRE",
		Platform:      "indeed",
		Status:        StatusInterview,
		Response:      "Recruiter call",
		InterviewDate: "2026-10-21",
		Notes:         "bring portfolio",
	}

	row := rec.Row()
	assert.Len(t, row, len(LedgerColumns()))

	back, err := ApplicationFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestApplicationFromRow_Errors(t *testing.T) {
	_, err := ApplicationFromRow([]string{"2026-10-14", "Acme"})
	assert.Error(t, err)

	_, err = ApplicationFromRow([]string{"2026-10-14", "Acme", "SRE", "indeed", "Unknown", "", "", ""})
	assert.Error(t, err)
}

func TestLedgerColumns_Order(t *testing.T) {
	assert.Equal(t,
		[]string{"Date", "Company", "Position", "Platform", "Status", "Response", "InterviewDate", "Notes"},
		LedgerColumns())
}
