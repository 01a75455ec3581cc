package sources

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/petem573/dealflow/internal/browser"
	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/fetcher"
	"github.com/petem573/dealflow/internal/logger"
)

// CTVC listing selectors and pacing. The newsletter index renders its
// article cards with scripts and paginates through a "load more"
// control instead of page URLs.
const (
	ctvcArticleLinkSelector = "div.flex-1 h3 > a"
	ctvcLoadMoreSelector    = "a.load-more"
	ctvcListWait            = 20 * time.Second
	ctvcLoadMoreClicks      = 3
	ctvcLoadMoreSettle      = 3 * time.Second
	ctvcInitialSettle       = 2 * time.Second
)

// ctvcSubsector tags refs from the newsletter index; per-deal records
// get their own subsector from the pipeline.
const ctvcSubsector = "Climatetech Newsletter"

// ctvcDealsHeading marks the start of the deals block in a newsletter
// issue.
const ctvcDealsHeading = "deals of the week"

// ctvcStopHeadings end the deals block; the first h2/h3 matching any of
// these stops collection.
var ctvcStopHeadings = []string{
	"in the news", "exits", "new funds", "pop-up", "opportunities & events", "jobs",
}

// CTVC scrapes the CTVC climate-tech newsletter. It is a bulletin
// source: each issue bundles many deals under a "deals of the week"
// heading, separated by emoji markers.
type CTVC struct {
	baseURL string
	siteURL string
	opener  browser.Opener
	client  *fetcher.Client
	logger  logger.Interface
}

// NewCTVC creates the CTVC adapter. baseURL is the newsletter tag
// index; siteURL is the origin used to absolutize article links.
func NewCTVC(baseURL, siteURL string, opener browser.Opener, client *fetcher.Client, log logger.Interface) *CTVC {
	return &CTVC{
		baseURL: baseURL,
		siteURL: strings.TrimRight(siteURL, "/"),
		opener:  opener,
		client:  client,
		logger:  log.WithComponent("ctvc"),
	}
}

// Name implements Adapter.
func (s *CTVC) Name() string { return "CTVC" }

// Bulletin implements Adapter. CTVC issues bundle multiple deals.
func (s *CTVC) Bulletin() bool { return true }

// List opens the newsletter index in a headless session, clicks the
// load-more control a bounded number of times, and collects article
// links from the rendered page. The load-more clicks are CTVC's only
// pagination, so any page beyond the first is exhausted by definition.
func (s *CTVC) List(ctx context.Context, page int) []domain.ArticleRef {
	if page > 1 {
		return nil
	}

	session, err := s.opener.Open(ctx, s.baseURL)
	if err != nil {
		s.logger.Error("Browser open failed", "url", s.baseURL, "error", err)
		return nil
	}
	defer session.Close()

	if err := session.WaitFor(ctvcArticleLinkSelector, ctvcListWait); err != nil {
		s.logger.Error("Newsletter index did not render", "error", err)
		return nil
	}
	time.Sleep(ctvcInitialSettle)

	for i := 0; i < ctvcLoadMoreClicks; i++ {
		if err := session.Click(ctvcLoadMoreSelector); err != nil {
			s.logger.Debug("Load-more control not found", "clicks", i)
			break
		}
		s.logger.Debug("Clicked load more", "click", i+1, "of", ctvcLoadMoreClicks)
		time.Sleep(ctvcLoadMoreSettle)
	}

	html, err := session.PageSource()
	if err != nil {
		s.logger.Error("Page source failed", "error", err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Error("Page parse failed", "error", err)
		return nil
	}

	var refs []domain.ArticleRef
	doc.Find(ctvcArticleLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = s.siteURL + href
		}
		refs = append(refs, domain.ArticleRef{URL: href, Subsector: ctvcSubsector})
	})

	refs = dedupeRefs(refs)
	s.logger.Info("Newsletter index crawled", "articles", len(refs))
	return refs
}

// Fetch scrapes one newsletter issue and returns the deals block: the
// text of every sibling after the "deals of the week" heading, up to
// the first stop heading. Issues without a recognizable deals section
// yield the content-not-found sentinel.
func (s *CTVC) Fetch(ctx context.Context, url string) (string, string) {
	doc, err := s.client.GetDocument(ctx, url)
	if err != nil {
		s.logger.Error("Issue fetch failed", "url", url, "error", err)
		return "", domain.ContentNotFound
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())

	main := doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		cls, _ := sel.Attr("class")
		return strings.Contains(cls, "content") && strings.Contains(cls, "prose")
	}).First()
	if main.Length() == 0 {
		return title, domain.ContentNotFound
	}

	heading := main.Find("h2, h3").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(sel.Text()), ctvcDealsHeading)
	}).First()
	if heading.Length() == 0 {
		return title, domain.ContentNotFound
	}

	var parts []string
	heading.NextAll().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if goquery.NodeName(sel) == "h2" || goquery.NodeName(sel) == "h3" {
			text := strings.ToLower(strings.TrimSpace(sel.Text()))
			for _, stop := range ctvcStopHeadings {
				if strings.Contains(text, stop) {
					return false
				}
			}
		}
		parts = append(parts, squashSpaces(sel.Text()))
		return true
	})

	body := strings.Join(parts, "\n")
	if strings.TrimSpace(body) == "" {
		return title, domain.ContentNotFound
	}
	return title, body
}
