package sources

import (
	"net/url"
	"strings"

	"github.com/jonathan/job-assistant/internal/types"
)

// MaxPerSource caps how many listings each board contributes to a search.
const MaxPerSource = 5

// Normalize converts scraped items into listing records.
// Items without a title or a resolvable link are dropped; document order is kept.
func Normalize(board Board, raw []RawListing) []types.ListingRecord {
	base, baseErr := url.Parse(strings.TrimSpace(board.BaseURL))

	out := make([]types.ListingRecord, 0, min(len(raw), MaxPerSource))
	for _, item := range raw {
		if len(out) == MaxPerSource {
			break
		}

		title := strings.Join(strings.Fields(item.Title), " ")
		if title == "" {
			continue
		}

		link, ok := resolveLink(base, baseErr, item.Link)
		if !ok {
			continue
		}

		company := strings.Join(strings.Fields(item.Company), " ")
		if company == "" {
			company = types.UnknownCompany
		}

		out = append(out, types.ListingRecord{
			Title:   title,
			Company: company,
			Source:  board.Source(),
			URL:     link,
		})
	}
	return out
}

func resolveLink(base *url.URL, baseErr error, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if !ref.IsAbs() {
		if baseErr != nil || base == nil || !base.IsAbs() {
			return "", false
		}
		ref = base.ResolveReference(ref)
	}
	if (ref.Scheme != "http" && ref.Scheme != "https") || ref.Host == "" {
		return "", false
	}
	return ref.String(), true
}
