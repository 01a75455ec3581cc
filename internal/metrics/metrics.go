// Package metrics collects per-run ingestion counters.
package metrics

import (
	"sync"
	"time"
)

// Run holds the counters for one ingestion pass. All methods are safe
// for concurrent use.
type Run struct {
	mu sync.Mutex

	// startTime is when the run began.
	startTime time.Time
	// pagesListed is the number of listing pages crawled.
	pagesListed int64
	// articlesSeen is the number of article references encountered.
	articlesSeen int64
	// alreadyProcessed is the number of references skipped via the ledger.
	alreadyProcessed int64
	// scrapeFailures is the number of articles with no usable content.
	scrapeFailures int64
	// nonFunding is the number of articles classified away.
	nonFunding int64
	// extractionFailures is the number of extractions that produced
	// nothing usable.
	extractionFailures int64
	// accepted is the number of records kept for the flush.
	accepted int64
}

// NewRun creates counters for a fresh ingestion pass.
func NewRun() *Run {
	return &Run{startTime: time.Now()}
}

// PageListed records one crawled listing page.
func (r *Run) PageListed() { r.incr(&r.pagesListed) }

// ArticleSeen records one encountered article reference.
func (r *Run) ArticleSeen() { r.incr(&r.articlesSeen) }

// AlreadyProcessed records one ledger skip.
func (r *Run) AlreadyProcessed() { r.incr(&r.alreadyProcessed) }

// ScrapeFailed records one article with no usable content.
func (r *Run) ScrapeFailed() { r.incr(&r.scrapeFailures) }

// NonFunding records one article classified away.
func (r *Run) NonFunding() { r.incr(&r.nonFunding) }

// ExtractionFailed records one extraction that produced nothing usable.
func (r *Run) ExtractionFailed() { r.incr(&r.extractionFailures) }

// RecordAccepted records one record kept for the flush.
func (r *Run) RecordAccepted() { r.incr(&r.accepted) }

func (r *Run) incr(dst *int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*dst++
}

// Accepted returns the number of accepted records so far.
func (r *Run) Accepted() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accepted
}

// Elapsed returns the wall time since the run began.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.startTime)
}

// Fields returns the counters as logger key-value pairs.
func (r *Run) Fields() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []any{
		"pages_listed", r.pagesListed,
		"articles_seen", r.articlesSeen,
		"already_processed", r.alreadyProcessed,
		"scrape_failures", r.scrapeFailures,
		"non_funding", r.nonFunding,
		"extraction_failures", r.extractionFailures,
		"accepted", r.accepted,
		"elapsed", time.Since(r.startTime).String(),
	}
}
