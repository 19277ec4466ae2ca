package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
)

// NoJobsMessage is shown when every source returned nothing.
const NoJobsMessage = "No jobs found"

// JobsResponse is returned by GET /jobs
type JobsResponse struct {
	Keyword  string                `json:"keyword"`
	Location string                `json:"location,omitempty"`
	Count    int                   `json:"count"`
	Listings []types.ListingRecord `json:"listings"`
	Message  string                `json:"message,omitempty"`
}

// handleSearchJobs aggregates every board and replaces the session's last results.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if keyword == "" {
		s.errorFrom(w, &ErrValidation{Field: "keyword", Message: "keyword is required"})
		return
	}

	result := s.aggregator.SearchDetailed(r.Context(), keyword, location)
	for _, failed := range result.Failed() {
		s.logger.Debug("source contributed no listings",
			zap.String("session_id", sess.ID),
			zap.String("source", string(failed.Source)),
		)
	}

	sess.SetListings(result.Listings, s.now())
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.errorFrom(w, fmt.Errorf("failed to store session: %w", err))
		return
	}

	resp := JobsResponse{
		Keyword:  keyword,
		Location: location,
		Count:    len(result.Listings),
		Listings: result.Listings,
	}
	if len(result.Listings) == 0 {
		resp.Message = NoJobsMessage
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
