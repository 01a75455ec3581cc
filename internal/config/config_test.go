package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petem573/dealflow/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Pipeline.TargetRecords)
	assert.Equal(t, 5, cfg.Pipeline.MaxPagesPerSource)
	assert.Equal(t, 1500*time.Millisecond, cfg.Pipeline.ServiceDelay)
	assert.Equal(t, "processed_urls.log", cfg.Ledger.Path)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.True(t, cfg.Sources.CTVC.Enabled)
	assert.False(t, cfg.Sources.TechCrunch.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
pipeline:
  target_records: 3
  max_pages_per_source: 2
  service_delay: 500ms
sources:
  canary_media:
    enabled: true
    url: https://example.com/finance
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pipeline.TargetRecords)
	assert.Equal(t, 2, cfg.Pipeline.MaxPagesPerSource)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.ServiceDelay)
	assert.True(t, cfg.Sources.CanaryMedia.Enabled)
	assert.Equal(t, "https://example.com/finance", cfg.Sources.CanaryMedia.URL)
	assert.Equal(t, []string{"Canary Media", "CTVC"}, cfg.EnabledSources())
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingAPIKey)
}

func TestValidateRejectsNonPositiveBounds(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Pipeline.TargetRecords = 0

	assert.Error(t, cfg.Validate())
}

func TestValidatePassesWithDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
}
