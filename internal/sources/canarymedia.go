package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/fetcher"
	"github.com/petem573/dealflow/internal/logger"
)

// canaryTitleSuffix is stripped from scraped article titles.
const canaryTitleSuffix = " | Canary Media"

// CanaryMedia scrapes the Canary Media climatetech-finance section.
// Listing and articles are both static markup.
type CanaryMedia struct {
	baseURL string
	client  *fetcher.Client
	logger  logger.Interface
}

// NewCanaryMedia creates the Canary Media adapter. baseURL is the
// section listing page.
func NewCanaryMedia(baseURL string, client *fetcher.Client, log logger.Interface) *CanaryMedia {
	return &CanaryMedia{
		baseURL: baseURL,
		client:  client,
		logger:  log.WithComponent("canary-media"),
	}
}

// Name implements Adapter.
func (s *CanaryMedia) Name() string { return "Canary Media" }

// Bulletin implements Adapter. Canary Media articles cover one deal.
func (s *CanaryMedia) Bulletin() bool { return false }

// List crawls one listing page. Pages beyond the first live under a
// /p{n} path suffix.
func (s *CanaryMedia) List(ctx context.Context, page int) []domain.ArticleRef {
	listURL := s.baseURL
	if page > 1 {
		listURL = fmt.Sprintf("%s/p%d", strings.TrimRight(s.baseURL, "/"), page)
	}

	var refs []domain.ArticleRef
	c := newListingCollector(ctx)
	c.OnHTML("li.py-5", func(e *colly.HTMLElement) {
		href := e.ChildAttr("a.type-gamma", "href")
		if href == "" {
			return
		}
		subsector := strings.TrimSpace(e.ChildText("p.type-theta"))
		if subsector == "" {
			subsector = domain.NotSpecified
		}
		refs = append(refs, domain.ArticleRef{
			URL:       e.Request.AbsoluteURL(href),
			Subsector: subsector,
		})
	})

	if err := c.Visit(listURL); err != nil {
		s.logger.Error("Listing crawl failed", "url", listURL, "error", err)
		return nil
	}
	c.Wait()

	refs = dedupeRefs(refs)
	s.logger.Info("Listing crawled", "url", listURL, "articles", len(refs))
	return refs
}

// Fetch scrapes one article. The body comes from the div.prose content
// container.
func (s *CanaryMedia) Fetch(ctx context.Context, url string) (string, string) {
	doc, err := s.client.GetDocument(ctx, url)
	if err != nil {
		s.logger.Error("Article fetch failed", "url", url, "error", err)
		return "", domain.ContentNotFound
	}

	title := strings.TrimSpace(strings.ReplaceAll(
		doc.Find("title").First().Text(), canaryTitleSuffix, ""))

	prose := doc.Find("div.prose").First()
	if prose.Length() == 0 {
		return title, domain.ContentNotFound
	}

	return title, collapseText(prose.Text())
}
