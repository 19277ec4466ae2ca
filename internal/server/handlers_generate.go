package server

import (
	"net/http"

	"github.com/jonathan/job-assistant/internal/session"
)

// ---------------------------------------------------------------------
// Text Generation Handlers
// ---------------------------------------------------------------------

// GenerateRequest is the body of every /generate endpoint. When ListingIndex
// is set and JobTitle is empty, the title of that listing from the last
// search is used.
type GenerateRequest struct {
	JobTitle       string `json:"job_title" validate:"omitempty,max=500"`
	JobDescription string `json:"job_description" validate:"max=50000"`
	ListingIndex   *int   `json:"listing_index,omitempty" validate:"omitempty,min=0"`
}

// GenerateResponse carries generated text.
type GenerateResponse struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	sess, req, ok := s.generationInput(w, r, true, true)
	if !ok {
		return
	}
	text := s.generator.CoverLetter(r.Context(), sess.ResumeText, req.JobTitle, req.JobDescription)
	s.generated(w, text)
}

func (s *Server) handleTailorResume(w http.ResponseWriter, r *http.Request) {
	sess, req, ok := s.generationInput(w, r, true, false)
	if !ok {
		return
	}
	if req.JobDescription == "" {
		s.errorFrom(w, &ErrValidation{Field: "job_description", Message: "job_description is required"})
		return
	}
	text := s.generator.TailorResume(r.Context(), sess.ResumeText, req.JobDescription)
	s.generated(w, text)
}

func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	_, req, ok := s.generationInput(w, r, false, true)
	if !ok {
		return
	}
	text := s.generator.InterviewQuestions(r.Context(), req.JobTitle, req.JobDescription)
	s.generated(w, text)
}

// generationInput loads the session and request, resolving a listing reference.
func (s *Server) generationInput(w http.ResponseWriter, r *http.Request, needResume, needTitle bool) (*session.Session, *GenerateRequest, bool) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return nil, nil, false
	}

	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorFrom(w, err)
		return nil, nil, false
	}

	if req.ListingIndex != nil && req.JobTitle == "" {
		listing, err := sess.Listing(*req.ListingIndex)
		if err != nil {
			s.errorFrom(w, &ErrValidation{Field: "listing_index", Message: err.Error()})
			return nil, nil, false
		}
		req.JobTitle = listing.Title
	}

	if needTitle && req.JobTitle == "" {
		s.errorFrom(w, &ErrValidation{Field: "job_title", Message: "job_title or listing_index is required"})
		return nil, nil, false
	}
	if needResume && !sess.HasResume() {
		s.errorFrom(w, &ErrNoResume{})
		return nil, nil, false
	}
	return sess, &req, true
}

func (s *Server) generated(w http.ResponseWriter, text string) {
	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Text:      text,
		Available: s.generator.Available(),
	})
}
