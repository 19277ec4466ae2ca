// Package fetch performs the outbound page loads used by the board adapters
// and posting lookups, and reduces HTML to readable text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single page load.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent when Options leaves UserAgent empty.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobAssistant/1.0)"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// ErrStatus marks a response that arrived with a non-2xx status.
var ErrStatus = errors.New("unexpected HTTP status")

// Page is a loaded document.
type Page struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// Error describes a failed page load.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures outbound requests.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns browser-like headers and the default timeout.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

// Client loads pages with one shared transport, so concurrent adapters reuse connections.
type Client struct {
	http      *http.Client
	userAgent string
	headers   map[string]string
}

// NewClient returns a Client for opts; nil opts means DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: ua,
		headers:   opts.Headers,
	}
}

var defaultClient = NewClient(nil)

// Get loads rawURL. A non-2xx response returns the Page together with an
// *Error wrapping ErrStatus.
func (c *Client) Get(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read body", Cause: err}
	}

	page := &Page{
		URL:         rawURL,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return page, &Error{URL: rawURL, Message: fmt.Sprintf("status %d", resp.StatusCode), Cause: ErrStatus}
	}
	return page, nil
}

// URL loads rawURL with a one-off client built from opts.
func URL(ctx context.Context, rawURL string, opts *Options) (*Page, error) {
	if opts == nil {
		return defaultClient.Get(ctx, rawURL)
	}
	return NewClient(opts).Get(ctx, rawURL)
}

// ParseDocument parses HTML into a goquery document.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// boilerplate is stripped from every page before text is taken.
const boilerplate = "nav, footer, header, script, style, noscript, .ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup"

// MainText returns the text of the first element matching one of content,
// after removing boilerplate and noise. With no match it takes the whole body.
func MainText(doc *goquery.Document, content, noise []string) string {
	doc.Find(boilerplate).Remove()
	if len(noise) > 0 {
		doc.Find(strings.Join(noise, ", ")).Remove()
	}

	for _, sel := range content {
		if s := doc.Find(sel); s.Length() > 0 {
			return CleanWhitespace(s.First().Text())
		}
	}
	return CleanWhitespace(doc.Find("body").Text())
}

// ExtractMainText parses html and applies MainText.
func ExtractMainText(html string, content []string, noise ...string) (string, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return "", err
	}
	return MainText(doc, content, noise), nil
}

// GenericSelectors match the main region of most pages.
func GenericSelectors() []string {
	return []string{"main", "article", ".content", "#content", ".main-content", "#main-content"}
}

// PostingSelectors match the description block of typical job postings,
// falling back to GenericSelectors.
func PostingSelectors() []string {
	return append([]string{
		".job-description",
		"#job-description",
		".job-content",
		"#job-content",
		".job-details",
		".posting-content",
		"[data-testid='job-description']",
	}, GenericSelectors()...)
}

// CleanWhitespace trims every line and drops blank ones.
func CleanWhitespace(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
