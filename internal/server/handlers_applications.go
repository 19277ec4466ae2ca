package server

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonathan/job-assistant/internal/dashboard"
	"github.com/jonathan/job-assistant/internal/ledger"
	"github.com/jonathan/job-assistant/internal/notify"
	"github.com/jonathan/job-assistant/internal/types"
)

// ---------------------------------------------------------------------
// Application Ledger Handlers
// ---------------------------------------------------------------------

// ApplicationRow is a ledger row with its index.
type ApplicationRow struct {
	Index int `json:"index"`
	types.ApplicationRecord
}

// ApplicationsResponse is returned by GET /applications
type ApplicationsResponse struct {
	Columns      []string         `json:"columns"`
	Applications []ApplicationRow `json:"applications"`
}

// ApplyRequest records an application. With ListingIndex set, empty
// company, position and platform are taken from that listing of the last search.
type ApplyRequest struct {
	Company      string `json:"company" validate:"max=200"`
	Position     string `json:"position" validate:"max=200"`
	Platform     string `json:"platform" validate:"max=100"`
	Notes        string `json:"notes" validate:"max=5000"`
	ListingIndex *int   `json:"listing_index,omitempty" validate:"omitempty,min=0"`
}

// ApplyResponse is returned by POST /applications
type ApplyResponse struct {
	Index       int                     `json:"index"`
	Application types.ApplicationRecord `json:"application"`
	Warning     string                  `json:"warning,omitempty"`
}

// UpdateApplicationRequest edits a ledger row. Omitted fields are left unchanged.
type UpdateApplicationRequest struct {
	Status        *string `json:"status,omitempty"`
	Response      *string `json:"response,omitempty" validate:"omitempty,max=2000"`
	InterviewDate *string `json:"interview_date,omitempty"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.loadSession(w, r); !ok {
		return
	}

	rows := s.ledger.Rows()
	out := make([]ApplicationRow, len(rows))
	for i, rec := range rows {
		out[i] = ApplicationRow{Index: i, ApplicationRecord: rec}
	}
	s.jsonResponse(w, http.StatusOK, ApplicationsResponse{Columns: s.ledger.Columns(), Applications: out})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}

	in := ledger.ApplyInput{
		Company:  req.Company,
		Position: req.Position,
		Platform: req.Platform,
		Notes:    req.Notes,
	}
	if req.ListingIndex != nil {
		listing, err := sess.Listing(*req.ListingIndex)
		if err != nil {
			s.errorFrom(w, &ErrValidation{Field: "listing_index", Message: err.Error()})
			return
		}
		if in.Company == "" {
			in.Company = listing.Company
		}
		if in.Position == "" {
			in.Position = listing.Title
		}
		if in.Platform == "" {
			in.Platform = string(listing.Source)
		}
	}
	if err := validateRequest(&in); err != nil {
		s.errorFrom(w, err)
		return
	}

	index, rec, err := s.ledger.Apply(r.Context(), in)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	msg := notify.ApplicationConfirmation(s.notifyTo, rec.Company, rec.Position, rec.Date)
	warning := notify.Send(r.Context(), s.notifier, msg, s.logger)

	s.jsonResponse(w, http.StatusCreated, ApplyResponse{Index: index, Application: rec, Warning: warning})
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.loadSession(w, r); !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "index", Message: "index must be an integer"})
		return
	}

	var req UpdateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}

	patch := ledger.Patch{
		Response:      req.Response,
		InterviewDate: req.InterviewDate,
		Notes:         req.Notes,
	}
	if req.Status != nil {
		status, err := types.ParseStatus(*req.Status)
		if err != nil {
			s.errorFrom(w, &ErrValidation{Field: "status", Message: err.Error()})
			return
		}
		patch.Status = &status
	}
	if patch.Empty() {
		s.errorFrom(w, &ErrValidation{Field: "body", Message: "no fields to update"})
		return
	}

	rec, err := s.ledger.Update(r.Context(), index, patch)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Application not found")
			return
		}
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ApplicationRow{Index: index, ApplicationRecord: rec})
}

// handleExportApplications writes the ledger as CSV in the persisted column order.
func (s *Server) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.loadSession(w, r); !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(s.ledger.Columns())
	for _, rec := range s.ledger.Rows() {
		_ = cw.Write(rec.Row())
	}
	cw.Flush()
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.loadSession(w, r); !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard.Summarize(s.ledger.Rows(), s.now()))
}
