package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/petem573/dealflow/internal/browser"
	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/logger"
)

// cleanTechnicaWait bounds how long article scrapes wait for the
// JS-rendered title and body containers.
const cleanTechnicaWait = 15 * time.Second

// cleanTechnicaStripSelectors removes ad and share blocks from article
// bodies before text extraction.
const cleanTechnicaStripSelectors = "hr, center, .afterpost, .sharedaddy"

// categoryClassPrefix marks the CSS class carrying an article's
// category on listing cards.
const categoryClassPrefix = "category-"

// CleanTechnica scrapes CleanTechnica search results. The listing is
// static markup but articles only render their body with scripts
// enabled, so Fetch goes through a headless-browser session.
type CleanTechnica struct {
	searchURL string
	opener    browser.Opener
	logger    logger.Interface
}

// NewCleanTechnica creates the CleanTechnica adapter. searchURL is a
// search results page, query string included.
func NewCleanTechnica(searchURL string, opener browser.Opener, log logger.Interface) *CleanTechnica {
	return &CleanTechnica{
		searchURL: searchURL,
		opener:    opener,
		logger:    log.WithComponent("cleantechnica"),
	}
}

// Name implements Adapter.
func (s *CleanTechnica) Name() string { return "CleanTechnica" }

// Bulletin implements Adapter. CleanTechnica articles cover one deal.
func (s *CleanTechnica) Bulletin() bool { return false }

// List crawls one page of search results. Pages beyond the first use
// WordPress path pagination with the query string re-appended.
func (s *CleanTechnica) List(ctx context.Context, page int) []domain.ArticleRef {
	listURL := s.pageURL(page)

	var refs []domain.ArticleRef
	c := newListingCollector(ctx)
	c.OnHTML("article", func(e *colly.HTMLElement) {
		href := e.ChildAttr("div.cm-featured-image > a", "href")
		if href == "" {
			return
		}
		refs = append(refs, domain.ArticleRef{
			URL:       e.Request.AbsoluteURL(href),
			Subsector: categoryFromClasses(e.Attr("class")),
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

// pageURL builds the listing URL for a page number.
func (s *CleanTechnica) pageURL(page int) string {
	if page <= 1 {
		return s.searchURL
	}
	base, query, _ := strings.Cut(s.searchURL, "?")
	return fmt.Sprintf("%spage/%d/?%s", base, page, query)
}

// categoryFromClasses derives a subsector from an article card's
// category-* CSS class, title-cased with dashes spaced out.
func categoryFromClasses(classAttr string) string {
	for _, cls := range strings.Fields(classAttr) {
		if rest, ok := strings.CutPrefix(cls, categoryClassPrefix); ok {
			words := strings.Split(rest, "-")
			for i, w := range words {
				if w != "" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			return strings.Join(words, " ")
		}
	}
	return "CleanTech"
}

// Fetch scrapes one article through a headless session, waiting for the
// rendered title and summary containers before reading the page.
func (s *CleanTechnica) Fetch(ctx context.Context, url string) (string, string) {
	session, err := s.opener.Open(ctx, url)
	if err != nil {
		s.logger.Error("Browser open failed", "url", url, "error", err)
		return "", domain.ContentNotFound
	}
	defer session.Close()

	if err := session.WaitFor("h1.cm-entry-title", cleanTechnicaWait); err != nil {
		s.logger.Error("Title did not render", "url", url, "error", err)
		return "", domain.ContentNotFound
	}
	if err := session.WaitFor("div.cm-entry-summary", cleanTechnicaWait); err != nil {
		s.logger.Error("Body did not render", "url", url, "error", err)
		return "", domain.ContentNotFound
	}

	html, err := session.PageSource()
	if err != nil {
		s.logger.Error("Page source failed", "url", url, "error", err)
		return "", domain.ContentNotFound
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Error("Page parse failed", "url", url, "error", err)
		return "", domain.ContentNotFound
	}

	title := strings.TrimSpace(doc.Find("h1.cm-entry-title").First().Text())

	summary := doc.Find("div.cm-entry-summary").First()
	if summary.Length() == 0 {
		return title, domain.ContentNotFound
	}
	summary.Find(cleanTechnicaStripSelectors).Remove()

	return title, collapseText(summary.Text())
}
