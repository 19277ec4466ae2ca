// Package session holds per-user state between requests: the uploaded résumé
// and the most recent search results.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-assistant/internal/types"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// Session is the state carried between requests of one user.
type Session struct {
	ID         string                `json:"id"`
	ResumeText string                `json:"resume_text,omitempty"`
	Profile    *types.ResumeProfile  `json:"profile,omitempty"`
	Listings   []types.ListingRecord `json:"listings,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// New returns an empty session with a random ID.
func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasResume reports whether a résumé has been uploaded.
func (s *Session) HasResume() bool {
	return s.ResumeText != ""
}

// SetResume replaces the résumé text and profile.
func (s *Session) SetResume(text string, profile types.ResumeProfile, now time.Time) {
	s.ResumeText = text
	s.Profile = &profile
	s.UpdatedAt = now
}

// SetListings replaces the last search results.
func (s *Session) SetListings(listings []types.ListingRecord, now time.Time) {
	s.Listings = append([]types.ListingRecord(nil), listings...)
	s.UpdatedAt = now
}

// Listing returns one of the last search results by index.
func (s *Session) Listing(index int) (types.ListingRecord, error) {
	if index < 0 || index >= len(s.Listings) {
		return types.ListingRecord{}, fmt.Errorf("listing %d not in last search (%d results)", index, len(s.Listings))
	}
	return s.Listings[index], nil
}

// Store persists sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// ValidID reports whether id looks like a session ID issued by New.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
