// Package pipeline drives the end-to-end ingestion run: listing crawl,
// ledger dedup, article scrape, classification or segmentation,
// extraction, normalization, and the final flush to the sink.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/llm"
	"github.com/petem573/dealflow/internal/logger"
	"github.com/petem573/dealflow/internal/metrics"
	"github.com/petem573/dealflow/internal/normalizer"
	"github.com/petem573/dealflow/internal/segmenter"
	"github.com/petem573/dealflow/internal/sources"
)

// bulletinSubsector tags records segmented out of newsletter issues.
const bulletinSubsector = "Deal from Newsletter"

// Classifier labels article titles.
type Classifier interface {
	Classify(ctx context.Context, title string) llm.Label
}

// Extractor turns free text into loosely-structured funding data. A nil
// result means the unit of work is skipped.
type Extractor interface {
	ExtractArticle(ctx context.Context, content string) domain.RawExtraction
	ExtractDeal(ctx context.Context, dealLine string) domain.RawExtraction
}

// Ledger is the processed-URL set. Mark is claim-before-process: a URL
// is marked as soon as it is picked up, so failures later in its
// processing never cause a retry on the next run.
type Ledger interface {
	Load() map[string]struct{}
	Contains(url string) bool
	Mark(url string) error
}

// Sink receives the run's accumulated records exactly once.
type Sink interface {
	Flush(records []domain.FundingRecord) error
}

// Config bounds a pipeline run.
type Config struct {
	// TargetRecords stops the run as soon as this many records have
	// been accepted.
	TargetRecords int
	// MaxPagesPerSource caps listing pagination per source.
	MaxPagesPerSource int
}

// Pipeline is the ingestion orchestrator. Execution is synchronous and
// single-threaded; the only scheduling concern is the pacer, which
// spaces out external-service calls.
type Pipeline struct {
	cfg        Config
	adapters   []sources.Adapter
	ledger     Ledger
	classifier Classifier
	extractor  Extractor
	sink       Sink
	pacer      *rate.Limiter
	logger     logger.Interface
	stats      *metrics.Run
}

// New creates a pipeline over the given sources and collaborators.
func New(
	cfg Config,
	adapters []sources.Adapter,
	ledger Ledger,
	classifier Classifier,
	extractor Extractor,
	sink Sink,
	pacer *rate.Limiter,
	log logger.Interface,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		adapters:   adapters,
		ledger:     ledger,
		classifier: classifier,
		extractor:  extractor,
		sink:       sink,
		pacer:      pacer,
		logger:     log.WithComponent("pipeline"),
	}
}

// Run executes one ingestion pass and returns the number of records
// flushed. The accumulator is flushed exactly once, whether or not the
// target was reached.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	runLog := p.logger.With("run_id", uuid.NewString())
	p.stats = metrics.NewRun()

	processed := p.ledger.Load()
	runLog.Info("Loaded previously processed URLs", "count", len(processed))

	var accumulated []domain.FundingRecord

sourceLoop:
	for _, adapter := range p.adapters {
		srcLog := runLog.With("source", adapter.Name())

		for page := 1; page <= p.cfg.MaxPagesPerSource; page++ {
			if p.done(accumulated) || ctx.Err() != nil {
				break sourceLoop
			}

			srcLog.Info("Crawling listing page", "page", page)
			refs := adapter.List(ctx, page)
			p.stats.PageListed()
			if len(refs) == 0 {
				srcLog.Info("No more articles for this source", "page", page)
				break
			}

			for _, ref := range refs {
				if p.done(accumulated) || ctx.Err() != nil {
					break sourceLoop
				}
				accumulated = p.processArticle(ctx, adapter, ref, accumulated, srcLog)
			}
		}
	}

	runLog.Info("Run complete", p.stats.Fields()...)
	if err := p.sink.Flush(accumulated); err != nil {
		return len(accumulated), fmt.Errorf("flush records: %w", err)
	}
	return len(accumulated), nil
}

// done reports whether the record target has been reached.
func (p *Pipeline) done(accumulated []domain.FundingRecord) bool {
	return len(accumulated) >= p.cfg.TargetRecords
}

// processArticle handles one article reference: ledger claim, scrape,
// and the bulletin or single-deal extraction path. The URL is marked
// processed before any scraping so a failure anywhere below is a
// permanent skip, never a reprocess.
func (p *Pipeline) processArticle(
	ctx context.Context,
	adapter sources.Adapter,
	ref domain.ArticleRef,
	accumulated []domain.FundingRecord,
	srcLog logger.Interface,
) []domain.FundingRecord {
	p.stats.ArticleSeen()
	if p.ledger.Contains(ref.URL) {
		p.stats.AlreadyProcessed()
		return accumulated
	}

	artLog := srcLog.With("url", ref.URL)
	if err := p.ledger.Mark(ref.URL); err != nil {
		// An unclaimed URL must not be processed: without a durable
		// mark the next run would ingest it again.
		artLog.Error("Ledger write failed, skipping URL", "error", err)
		return accumulated
	}

	title, body := adapter.Fetch(ctx, ref.URL)
	if title == "" || strings.TrimSpace(body) == "" || body == domain.ContentNotFound {
		artLog.Warn("Scrape returned no content, skipping")
		p.stats.ScrapeFailed()
		return accumulated
	}

	if adapter.Bulletin() {
		return p.processBulletin(ctx, adapter, ref, body, accumulated, artLog)
	}
	return p.processSingleDeal(ctx, adapter, ref, title, body, accumulated, artLog)
}

// processBulletin segments a bulletin body into deal candidates and
// extracts each candidate that passes the funding-keyword filter.
func (p *Pipeline) processBulletin(
	ctx context.Context,
	adapter sources.Adapter,
	ref domain.ArticleRef,
	body string,
	accumulated []domain.FundingRecord,
	artLog logger.Interface,
) []domain.FundingRecord {
	candidates := segmenter.Segment(body)
	artLog.Info("Segmented bulletin", "candidates", len(candidates))

	for _, candidate := range candidates {
		if p.done(accumulated) || ctx.Err() != nil {
			return accumulated
		}
		if !segmenter.WantsExtraction(candidate) {
			continue
		}

		raw := p.extractor.ExtractDeal(ctx, candidate)
		p.pace(ctx)
		if raw == nil {
			p.stats.ExtractionFailed()
			continue
		}

		rec := normalizer.Normalize(raw)
		if !rec.Accepted() {
			artLog.Debug("Extraction had no startup name, dropped")
			p.stats.ExtractionFailed()
			continue
		}
		rec.SourceURL = ref.URL
		rec.SourceSite = adapter.Name()
		rec.Subsector = bulletinSubsector
		accumulated = append(accumulated, rec)
		p.stats.RecordAccepted()
		artLog.Info("Accepted record", "startup", rec.StartupName, "total", len(accumulated))
	}
	return accumulated
}

// processSingleDeal classifies a single-deal article by title and
// extracts the whole body when it announces a funding round.
func (p *Pipeline) processSingleDeal(
	ctx context.Context,
	adapter sources.Adapter,
	ref domain.ArticleRef,
	title, body string,
	accumulated []domain.FundingRecord,
	artLog logger.Interface,
) []domain.FundingRecord {
	label := p.classifier.Classify(ctx, title)
	p.pace(ctx)
	if label != llm.LabelFundingRound {
		artLog.Info("Not a funding announcement, skipping", "label", label)
		p.stats.NonFunding()
		return accumulated
	}

	raw := p.extractor.ExtractArticle(ctx, body)
	p.pace(ctx)
	if raw == nil {
		artLog.Warn("Extraction returned nothing, skipping")
		p.stats.ExtractionFailed()
		return accumulated
	}

	rec := normalizer.Normalize(raw)
	if !rec.Accepted() {
		artLog.Warn("Extraction had no startup name, skipping")
		p.stats.ExtractionFailed()
		return accumulated
	}
	rec.SourceURL = ref.URL
	rec.SourceSite = adapter.Name()
	rec.Subsector = ref.Subsector
	if rec.Subsector == "" {
		rec.Subsector = domain.NotSpecified
	}
	accumulated = append(accumulated, rec)
	p.stats.RecordAccepted()
	artLog.Info("Accepted record", "startup", rec.StartupName, "total", len(accumulated))
	return accumulated
}

// pace spaces out external-service calls. Cancellation mid-wait is fine;
// the surrounding loops notice ctx on their next check.
func (p *Pipeline) pace(ctx context.Context) {
	if p.pacer == nil {
		return
	}
	_ = p.pacer.Wait(ctx)
}
