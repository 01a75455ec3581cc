package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/fetcher"
	"github.com/petem573/dealflow/internal/logger"
)

// techCrunchTitleSuffix is stripped from scraped article titles.
const techCrunchTitleSuffix = " | TechCrunch"

// techCrunchSubsector tags refs from the climate category listing.
const techCrunchSubsector = "Climate"

// TechCrunch scrapes the TechCrunch climate category. Listing and
// articles are both static markup.
type TechCrunch struct {
	baseURL string
	client  *fetcher.Client
	logger  logger.Interface
}

// NewTechCrunch creates the TechCrunch adapter. baseURL is the climate
// category listing page.
func NewTechCrunch(baseURL string, client *fetcher.Client, log logger.Interface) *TechCrunch {
	return &TechCrunch{
		baseURL: baseURL,
		client:  client,
		logger:  log.WithComponent("techcrunch"),
	}
}

// Name implements Adapter.
func (s *TechCrunch) Name() string { return "TechCrunch" }

// Bulletin implements Adapter. TechCrunch articles cover one deal.
func (s *TechCrunch) Bulletin() bool { return false }

// List crawls one page of the category listing. WordPress path
// pagination applies beyond page one.
func (s *TechCrunch) List(ctx context.Context, page int) []domain.ArticleRef {
	listURL := s.baseURL
	if page > 1 {
		listURL = fmt.Sprintf("%spage/%d/", strings.TrimRight(s.baseURL, "/")+"/", page)
	}

	var refs []domain.ArticleRef
	c := newListingCollector(ctx)
	c.OnHTML("a.loop-card__title-link", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if href == "" {
			return
		}
		refs = append(refs, domain.ArticleRef{
			URL:       e.Request.AbsoluteURL(href),
			Subsector: techCrunchSubsector,
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

// Fetch scrapes one article. The body is the joined paragraph text of
// the entry-content container.
func (s *TechCrunch) Fetch(ctx context.Context, url string) (string, string) {
	doc, err := s.client.GetDocument(ctx, url)
	if err != nil {
		s.logger.Error("Article fetch failed", "url", url, "error", err)
		return "", domain.ContentNotFound
	}

	title := strings.TrimSpace(strings.ReplaceAll(
		doc.Find("title").First().Text(), techCrunchTitleSuffix, ""))

	content := doc.Find("div.entry-content").First()
	if content.Length() == 0 {
		return title, domain.ContentNotFound
	}

	var paragraphs []string
	content.Find("p").Each(func(_ int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, strings.TrimSpace(sel.Text()))
	})

	return title, strings.Join(paragraphs, "\n")
}
