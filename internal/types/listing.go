// Package types provides type definitions for structured data used throughout the job assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"net/url"
)

// Source tags the job board a listing was scraped from.
type Source string

const (
	// SourceLinkedIn is the LinkedIn public job search
	SourceLinkedIn Source = "linkedin"
	// SourceIndeed is the Indeed job search
	SourceIndeed Source = "indeed"
	// SourceRemoteOK is the RemoteOK board
	SourceRemoteOK Source = "remoteok"
	// SourceWeWorkRemotely is the We Work Remotely board
	SourceWeWorkRemotely Source = "weworkremotely"
)

// UnknownCompany is used when a board omits the company name.
const UnknownCompany = "Unknown"

// ListingRecord is one job posting, normalized across sources.
type ListingRecord struct {
	Title   string `json:"title" validate:"required"`
	Company string `json:"company"`
	Source  Source `json:"source" validate:"required"`
	URL     string `json:"url" validate:"required"`
}

// Validate checks the listing invariants: non-empty title and source, and an absolute http(s) URL.
func (l *ListingRecord) Validate() error {
	if err := validate.Struct(l); err != nil {
		return err
	}
	u, err := url.Parse(l.URL)
	if err != nil {
		return fmt.Errorf("invalid listing url %q: %w", l.URL, err)
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("listing url %q is not an absolute http(s) url", l.URL)
	}
	return nil
}
