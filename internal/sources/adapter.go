package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
)

// Query is the user's search input.
type Query struct {
	Keyword  string
	Location string
}

// Adapter queries one job board.
type Adapter interface {
	Name() types.Source
	Search(ctx context.Context, q Query) ([]types.ListingRecord, error)
}

// RawListing is one item as scraped, before normalization.
type RawListing struct {
	Title   string
	Company string
	Link    string
}

// BoardAdapter scrapes a Board with one GET of its first results page.
type BoardAdapter struct {
	board    Board
	renderer fetch.Renderer
	logger   *zap.Logger
}

// NewBoardAdapter returns an adapter that fetches pages with renderer.
func NewBoardAdapter(board Board, renderer fetch.Renderer, logger *zap.Logger) *BoardAdapter {
	if renderer == nil {
		renderer = fetch.HTTPRenderer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardAdapter{
		board:    board,
		renderer: renderer,
		logger:   logger.With(zap.String("source", board.Name)),
	}
}

// Name implements Adapter.
func (a *BoardAdapter) Name() types.Source {
	return a.board.Source()
}

// Board returns the board definition.
func (a *BoardAdapter) Board() Board {
	return a.board
}

// Search implements Adapter.
func (a *BoardAdapter) Search(ctx context.Context, q Query) ([]types.ListingRecord, error) {
	searchURL := a.board.BuildSearchURL(q)
	if q.Location != "" && !a.board.SupportsLocation {
		a.logger.Debug("board ignores location", zap.String("location", q.Location))
	}
	a.logger.Debug("searching board", zap.String("url", searchURL))

	html, err := a.renderer.Render(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("%s search failed: %w", a.board.Name, err)
	}

	raw, err := Scrape(a.board, html)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.board.Name, err)
	}

	listings := Normalize(a.board, raw)
	a.logger.Debug("scraped board", zap.Int("items", len(raw)), zap.Int("kept", len(listings)))
	return listings, nil
}

// Scrape applies the board selectors to a results page.
func Scrape(board Board, html string) ([]RawListing, error) {
	doc, err := fetch.ParseDocument(html)
	if err != nil {
		return nil, err
	}

	var raw []RawListing
	doc.Find(board.Item).Each(func(_ int, item *goquery.Selection) {
		listing := RawListing{
			Title: selectionText(item, board.Title),
			Link:  selectionHref(item, board.Link),
		}
		if board.Company != "" {
			listing.Company = selectionText(item, board.Company)
		}
		raw = append(raw, listing)
	})
	return raw, nil
}

func selectionText(item *goquery.Selection, selector string) string {
	sel := item.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func selectionHref(item *goquery.Selection, selector string) string {
	var sel *goquery.Selection
	if item.Is(selector) {
		sel = item
	} else {
		sel = item.Find(selector).First()
	}
	href, ok := sel.Attr("href")
	if !ok {
		return ""
	}
	return strings.TrimSpace(href)
}
