package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DefaultRenderWait is how long the page is given to run its scripts after the body is ready.
const DefaultRenderWait = 2 * time.Second

// Renderer returns HTML for a URL.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages in headless Chrome. Requires Chrome/Chromium on the host.
type BrowserRenderer struct {
	Timeout time.Duration
	Wait    time.Duration
	Logger  *zap.Logger
}

// NewBrowserRenderer returns a renderer with the given timeout.
func NewBrowserRenderer(timeout time.Duration, logger *zap.Logger) *BrowserRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserRenderer{Timeout: timeout, Wait: DefaultRenderWait, Logger: logger}
}

// Render navigates to url and returns the rendered outer HTML.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.Wait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}

// HTTPRenderer loads pages with a plain GET. The zero value uses a default Client.
type HTTPRenderer struct {
	Client *Client
}

// Render returns the response body of url.
func (h HTTPRenderer) Render(ctx context.Context, url string) (string, error) {
	c := h.Client
	if c == nil {
		c = defaultClient
	}
	page, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(page.Body) == "" {
		return "", &Error{URL: url, Message: "empty response"}
	}
	return page.Body, nil
}
