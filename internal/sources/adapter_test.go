package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<ul class="results">
  <li class="job">
    <a class="link" href="/jobs/101"><span class="title">Go Engineer</span></a>
    <span class="company">Acme</span>
  </li>
  <li class="job">
    <a class="link" href="https://other.test/jobs/202"><span class="title">Platform Engineer</span></a>
  </li>
  <li class="job">
    <span class="title">Missing link</span>
  </li>
</ul>
</body></html>`

func testBoard(serverURL string) Board {
	return Board{
		Name:      "acme",
		SearchURL: serverURL + "/search?q={keyword}&l={location}",
		BaseURL:   serverURL,
		Item:      "li.job",
		Title:     ".title",
		Company:   ".company",
		Link:      "a.link",
	}
}

func TestBoardAdapter_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	board := testBoard(server.URL)
	board.SupportsLocation = true
	adapter := NewBoardAdapter(board, nil, nil)

	listings, err := adapter.Search(context.Background(), Query{Keyword: "go", Location: "Remote"})
	require.NoError(t, err)
	assert.Equal(t, "q=go&l=Remote", gotQuery)
	assert.Equal(t, types.Source("acme"), adapter.Name())
	assert.Equal(t, []types.ListingRecord{
		{Title: "Go Engineer", Company: "Acme", Source: "acme", URL: server.URL + "/jobs/101"},
		{Title: "Platform Engineer", Company: types.UnknownCompany, Source: "acme", URL: "https://other.test/jobs/202"},
	}, listings)
}

func TestBoardAdapter_Search_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	listings, err := NewBoardAdapter(testBoard(server.URL), nil, nil).Search(context.Background(), Query{Keyword: "go"})
	require.Error(t, err)
	assert.Nil(t, listings)
	assert.Contains(t, err.Error(), "429")
}

func TestBoardAdapter_Search_SelectorMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>redesigned page</p></body></html>"))
	}))
	defer server.Close()

	listings, err := NewBoardAdapter(testBoard(server.URL), nil, nil).Search(context.Background(), Query{Keyword: "go"})
	require.NoError(t, err)
	assert.Empty(t, listings)
}

type stubRenderer struct {
	html string
	err  error
	urls []string
}

func (s *stubRenderer) Render(_ context.Context, url string) (string, error) {
	s.urls = append(s.urls, url)
	return s.html, s.err
}

func TestBoardAdapter_UsesRenderer(t *testing.T) {
	r := &stubRenderer{err: errors.New("chrome not installed")}
	board := testBoard("https://acme.test")

	_, err := NewBoardAdapter(board, r, nil).Search(context.Background(), Query{Keyword: "data science"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome not installed")
	assert.Equal(t, []string{"https://acme.test/search?q=data+science&l="}, r.urls)
}

func TestScrape_ItemIsLink(t *testing.T) {
	board := Board{Item: "a.card", Title: ".t", Link: "a.card"}
	raw, err := Scrape(board, `<a class="card" href="/x"><b class="t">Title</b></a>`)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, RawListing{Title: "Title", Link: "/x"}, raw[0])
}
