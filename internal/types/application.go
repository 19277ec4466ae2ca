package types

import (
	"fmt"
	"strings"
)

// Status is the state of a submitted application.
type Status string

const (
	// StatusApplied is the initial status of every application
	StatusApplied Status = "Applied"
	// StatusInterview means an interview was scheduled
	StatusInterview Status = "Interview"
	// StatusOffer means an offer was received
	StatusOffer Status = "Offer"
	// StatusRejected means the application was declined
	StatusRejected Status = "Rejected"
	// StatusGhosted means the employer never answered
	StatusGhosted Status = "Ghosted"
)

// DateLayout is the layout used for application and interview dates.
const DateLayout = "2006-01-02"

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusGhosted}
}

// ParseStatus matches s against the fixed status set, ignoring case and surrounding space.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses() {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: must be one of Applied, Interview, Offer, Rejected, Ghosted", s)
}

// Valid reports whether the status is one of the fixed set.
func (s Status) Valid() bool {
	for _, st := range Statuses() {
		if s == st {
			return true
		}
	}
	return false
}

// ApplicationRecord is one row of the application ledger.
type ApplicationRecord struct {
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Company       string `json:"company" validate:"required"`
	Position      string `json:"position" validate:"required"`
	Platform      string `json:"platform"`
	Status        Status `json:"status" validate:"required,oneof=Applied Interview Offer Rejected Ghosted"`
	Response      string `json:"response"`
	InterviewDate string `json:"interview_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string `json:"notes"`
}

// Validate checks the record against the ledger invariants.
func (r *ApplicationRecord) Validate() error {
	return validate.Struct(r)
}

// LedgerColumns is the fixed column order of the persisted ledger.
func LedgerColumns() []string {
	return []string{"Date", "Company", "Position", "Platform", "Status", "Response", "InterviewDate", "Notes"}
}

// Row returns the record's fields in LedgerColumns order.
func (r *ApplicationRecord) Row() []string {
	return []string{r.Date, r.Company, r.Position, r.Platform, string(r.Status), r.Response, r.InterviewDate, r.Notes}
}

// ApplicationFromRow builds a record from fields in LedgerColumns order.
func ApplicationFromRow(row []string) (ApplicationRecord, error) {
	cols := LedgerColumns()
	if len(row) != len(cols) {
		return ApplicationRecord{}, fmt.Errorf("expected %d columns, got %d", len(cols), len(row))
	}
	status, err := ParseStatus(row[4])
	if err != nil {
		return ApplicationRecord{}, err
	}
	return ApplicationRecord{
		Date:          row[0],
		Company:       row[1],
		Position:      row[2],
		Platform:      row[3],
		Status:        status,
		Response:      row[5],
		InterviewDate: row[6],
		Notes:         row[7],
	}, nil
}
