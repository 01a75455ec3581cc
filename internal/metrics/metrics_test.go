package metrics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petem573/dealflow/internal/metrics"
)

func TestCountersStartAtZero(t *testing.T) {
	r := metrics.NewRun()
	assert.Equal(t, int64(0), r.Accepted())
	assert.GreaterOrEqual(t, r.Elapsed().Nanoseconds(), int64(0))
}

func TestFieldsReflectIncrements(t *testing.T) {
	r := metrics.NewRun()
	r.PageListed()
	r.ArticleSeen()
	r.ArticleSeen()
	r.AlreadyProcessed()
	r.ScrapeFailed()
	r.NonFunding()
	r.ExtractionFailed()
	r.RecordAccepted()

	fields := r.Fields()
	got := map[string]any{}
	for i := 0; i < len(fields)-1; i += 2 {
		got[fields[i].(string)] = fields[i+1]
	}

	assert.Equal(t, int64(1), got["pages_listed"])
	assert.Equal(t, int64(2), got["articles_seen"])
	assert.Equal(t, int64(1), got["already_processed"])
	assert.Equal(t, int64(1), got["scrape_failures"])
	assert.Equal(t, int64(1), got["non_funding"])
	assert.Equal(t, int64(1), got["extraction_failures"])
	assert.Equal(t, int64(1), got["accepted"])
	assert.Equal(t, int64(1), r.Accepted())
}

func TestConcurrentIncrements(t *testing.T) {
	r := metrics.NewRun()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RecordAccepted()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), r.Accepted())
}
