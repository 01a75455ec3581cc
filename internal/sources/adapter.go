// Package sources implements per-publication adapters. Each adapter
// knows how to turn a listing page into article references and how to
// scrape one article into a title and body. Publications have
// incompatible DOM shapes and some require script execution; isolating
// that here keeps the pipeline source-agnostic.
package sources

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/petem573/dealflow/internal/domain"
)

// listingUserAgent mimics a desktop browser on listing crawls.
const listingUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// listingRequestTimeout bounds a single listing-page request.
const listingRequestTimeout = 15 * time.Second

// newListingCollector builds a colly collector configured for one
// synchronous listing crawl, honoring ctx cancellation.
func newListingCollector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(listingUserAgent))
	c.SetRequestTimeout(listingRequestTimeout)
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	return c
}

// Adapter is the capability pair the pipeline drives for every
// publication.
type Adapter interface {
	// Name identifies the publication in records and logs.
	Name() string

	// Bulletin reports whether articles bundle multiple deals that must
	// be segmented, rather than describing a single funding event.
	Bulletin() bool

	// List fetches one listing page and parses article references from
	// it, deduplicated by URL within the call. An empty result signals
	// either exhaustion or a retrieval failure; the two are not
	// distinguished here and both stop pagination for this source.
	List(ctx context.Context, page int) []domain.ArticleRef

	// Fetch retrieves one article and extracts its title and body. When
	// the expected structure is absent the body is the
	// domain.ContentNotFound sentinel, not an error.
	Fetch(ctx context.Context, url string) (title, body string)
}

// dedupeRefs removes duplicate URLs, keeping first occurrence order.
func dedupeRefs(refs []domain.ArticleRef) []domain.ArticleRef {
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0]
	for _, ref := range refs {
		if _, ok := seen[ref.URL]; ok {
			continue
		}
		seen[ref.URL] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// collapseText renders the text of a scraped node as trimmed lines with
// blank lines dropped.
func collapseText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// squashSpaces collapses all whitespace runs in text to single spaces.
func squashSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
