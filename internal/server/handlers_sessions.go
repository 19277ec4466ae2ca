package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/jonathan/job-assistant/internal/resume"
	"github.com/jonathan/job-assistant/internal/server/middleware"
	"github.com/jonathan/job-assistant/internal/session"
	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------
// Session Handlers
// ---------------------------------------------------------------------

// CreateSessionResponse is returned by POST /sessions
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// SessionResponse describes the state held for a session
type SessionResponse struct {
	SessionID    string                `json:"session_id"`
	HasResume    bool                  `json:"has_resume"`
	Profile      *types.ResumeProfile  `json:"profile,omitempty"`
	Listings     []types.ListingRecord `json:"listings"`
	LastModified string                `json:"last_modified"`
}

// UploadResumeResponse is returned by POST /resume
type UploadResumeResponse struct {
	Profile    types.ResumeProfile `json:"profile"`
	Characters int                 `json:"characters"`
	Message    string              `json:"message,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.now())
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.errorFrom(w, fmt.Errorf("failed to store session: %w", err))
		return
	}

	token, err := s.jwtService.GenerateToken(sess.ID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.logger.Debug("session created", zap.String("session_id", sess.ID))
	s.jsonResponse(w, http.StatusCreated, CreateSessionResponse{SessionID: sess.ID, Token: token})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	listings := sess.Listings
	if listings == nil {
		listings = []types.ListingRecord{}
	}
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID:    sess.ID,
		HasResume:    sess.HasResume(),
		Profile:      sess.Profile,
		Listings:     listings,
		LastModified: sess.UpdatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		s.errorFrom(w, fmt.Errorf("failed to delete session: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.errorFrom(w, &ErrValidation{Field: "file", Message: "expected a multipart upload: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "file", Message: "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	// Reject unknown formats before reading the body.
	ext := filepath.Ext(header.Filename)
	if _, err := resume.ParseFormat(ext); err != nil {
		s.errorFrom(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "file", Message: "could not read upload"})
		return
	}

	text, profile, err := resume.Parse(data, ext)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	sess.SetResume(text, profile, s.now())
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.errorFrom(w, fmt.Errorf("failed to store session: %w", err))
		return
	}

	resp := UploadResumeResponse{Profile: profile, Characters: len([]rune(text))}
	if text == "" {
		resp.Message = "No text could be extracted from this document"
	}
	s.logger.Info("resume uploaded",
		zap.String("session_id", sess.ID),
		zap.String("filename", header.Filename),
		zap.Int("characters", resp.Characters),
		zap.Int("skills", len(profile.Skills)),
	)
	s.jsonResponse(w, http.StatusOK, resp)
}

// loadSession resolves the authenticated session or writes an error response.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return nil, false
	}

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			s.errorResponse(w, http.StatusUnauthorized, "session not found or expired")
			return nil, false
		}
		s.errorFrom(w, fmt.Errorf("failed to load session: %w", err))
		return nil, false
	}
	return sess, true
}
