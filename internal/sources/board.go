// Package sources defines the job board adapters queried by the aggregator.
//
// Each board is described declaratively (search URL template plus CSS selectors)
// so new boards can be added from YAML without code changes.
package sources

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode"

	"github.com/jonathan/job-assistant/internal/schemas"
	"github.com/jonathan/job-assistant/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed boards.yaml
var defaultBoardsYAML []byte

// Placeholders recognized in Board.SearchURL.
const (
	PlaceholderKeyword     = "{keyword}"
	PlaceholderKeywordSlug = "{keyword_slug}"
	PlaceholderLocation    = "{location}"
)

// Board is the declarative description of one job board.
type Board struct {
	Name             string `yaml:"name" json:"name"`
	Label            string `yaml:"label" json:"label,omitempty"`
	SearchURL        string `yaml:"search_url" json:"search_url"`
	BaseURL          string `yaml:"base_url" json:"base_url"`
	SupportsLocation bool   `yaml:"supports_location" json:"supports_location"`
	Item             string `yaml:"item" json:"item"`
	Title            string `yaml:"title" json:"title"`
	Company          string `yaml:"company" json:"company,omitempty"`
	Link             string `yaml:"link" json:"link"`
	Render           bool   `yaml:"render" json:"render"`
	Enabled          *bool  `yaml:"enabled" json:"enabled,omitempty"`
}

type boardFile struct {
	Boards []Board `yaml:"boards"`
}

// Source returns the tag stamped on listings from this board.
func (b Board) Source() types.Source {
	return types.Source(b.Name)
}

// DisplayName returns the label, falling back to the name.
func (b Board) DisplayName() string {
	if b.Label != "" {
		return b.Label
	}
	return b.Name
}

// IsEnabled reports whether the board should be queried. Boards are enabled unless set otherwise.
func (b Board) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

// BuildSearchURL fills the search URL template for a query.
// The location is left empty for boards that do not support it.
func (b Board) BuildSearchURL(q Query) string {
	location := ""
	if b.SupportsLocation {
		location = url.QueryEscape(strings.TrimSpace(q.Location))
	}
	keyword := strings.TrimSpace(q.Keyword)
	r := strings.NewReplacer(
		PlaceholderKeywordSlug, Slug(keyword),
		PlaceholderKeyword, url.QueryEscape(keyword),
		PlaceholderLocation, location,
	)
	return r.Replace(b.SearchURL)
}

// Slug lower-cases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	var sb strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return sb.String()
}

// LoadBoards decodes and validates a YAML board document.
func LoadBoards(r io.Reader) ([]Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read boards: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse boards YAML: %w", err)
	}
	if err := schemas.ValidateBoards(raw); err != nil {
		return nil, fmt.Errorf("invalid boards document: %w", err)
	}

	var file boardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode boards: %w", err)
	}

	seen := make(map[string]bool, len(file.Boards))
	for _, b := range file.Boards {
		if seen[b.Name] {
			return nil, fmt.Errorf("duplicate board name %q", b.Name)
		}
		seen[b.Name] = true
		if _, err := url.Parse(b.BaseURL); err != nil {
			return nil, fmt.Errorf("board %s: invalid base_url: %w", b.Name, err)
		}
	}

	return file.Boards, nil
}

// LoadBoardsFile reads board definitions from a YAML file.
func LoadBoardsFile(path string) ([]Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open boards file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadBoards(f)
}

// DefaultBoards returns the built-in boards in registration order.
func DefaultBoards() []Board {
	boards, err := LoadBoards(bytes.NewReader(defaultBoardsYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded boards.yaml is invalid: %v", err))
	}
	return boards
}
