// Package config loads and validates the application configuration from
// a YAML file and environment variables. The configuration object is
// constructed once at process start and passed into every component
// that needs it; nothing reads config ambiently.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/petem573/dealflow/internal/logger"
)

// envPrefix namespaces environment overrides, e.g.
// DEALFLOW_PIPELINE_TARGET_RECORDS.
const envPrefix = "DEALFLOW"

// apiKeyEnv supplies the completion-service credential. It is the one
// setting with no config-file fallback; a secret does not belong in a
// checked-in YAML file.
const apiKeyEnv = "OPENAI_API_KEY"

// ErrMissingAPIKey indicates the completion-service credential is not
// set. This is a fatal configuration error surfaced before any network
// activity.
var ErrMissingAPIKey = fmt.Errorf("config: %s is not set", apiKeyEnv)

// Pipeline defaults.
const (
	defaultTargetRecords     = 20
	defaultMaxPagesPerSource = 5
	defaultServiceDelay      = 1500 * time.Millisecond
)

// Default file locations.
const (
	defaultLedgerPath = "processed_urls.log"
	defaultSinkPath   = "climate_funding_data_master.csv"
)

// Default source URLs.
const (
	defaultCanaryURL        = "https://www.canarymedia.com/sections/climatetech-finance"
	defaultCleanTechnicaURL = "https://cleantechnica.com/?s=startup"
	defaultCTVCURL          = "https://www.ctvc.co/tag/newsletter/"
	defaultCTVCSiteURL      = "https://www.ctvc.co"
	defaultTechCrunchURL    = "https://techcrunch.com/category/climate/"
)

// PipelineConfig bounds an ingestion run.
type PipelineConfig struct {
	TargetRecords     int           `mapstructure:"target_records"`
	MaxPagesPerSource int           `mapstructure:"max_pages_per_source"`
	ServiceDelay      time.Duration `mapstructure:"service_delay"`
}

// LLMConfig configures the completion service client.
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// APIKey is populated from the environment, never from the file.
	APIKey string `mapstructure:"-"`
}

// SourceConfig configures one publication adapter.
type SourceConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	// SiteURL is the origin used to absolutize relative article links,
	// for sources whose listings emit them.
	SiteURL string `mapstructure:"site_url"`
}

// SourcesConfig holds every publication adapter's configuration.
type SourcesConfig struct {
	CanaryMedia   SourceConfig `mapstructure:"canary_media"`
	CleanTechnica SourceConfig `mapstructure:"cleantechnica"`
	CTVC          SourceConfig `mapstructure:"ctvc"`
	TechCrunch    SourceConfig `mapstructure:"techcrunch"`
}

// Config is the root application configuration.
type Config struct {
	Logger   logger.Config  `mapstructure:"logger"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Ledger   struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"ledger"`
	Sink struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"sink"`
	Sources SourcesConfig `mapstructure:"sources"`
}

// Load reads the configuration from the given file path (optional) and
// the environment. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && path != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LLM.APIKey = os.Getenv(apiKeyEnv)
	return &cfg, nil
}

// setDefaults applies default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.development", true)

	v.SetDefault("pipeline.target_records", defaultTargetRecords)
	v.SetDefault("pipeline.max_pages_per_source", defaultMaxPagesPerSource)
	v.SetDefault("pipeline.service_delay", defaultServiceDelay)

	v.SetDefault("ledger.path", defaultLedgerPath)
	v.SetDefault("sink.path", defaultSinkPath)

	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")

	v.SetDefault("sources.canary_media.enabled", false)
	v.SetDefault("sources.canary_media.url", defaultCanaryURL)
	v.SetDefault("sources.cleantechnica.enabled", false)
	v.SetDefault("sources.cleantechnica.url", defaultCleanTechnicaURL)
	v.SetDefault("sources.ctvc.enabled", true)
	v.SetDefault("sources.ctvc.url", defaultCTVCURL)
	v.SetDefault("sources.ctvc.site_url", defaultCTVCSiteURL)
	v.SetDefault("sources.techcrunch.enabled", false)
	v.SetDefault("sources.techcrunch.url", defaultTechCrunchURL)
}

// Validate checks the configuration for fatal errors. Called before any
// pipeline work begins.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Pipeline.TargetRecords <= 0 {
		return errors.New("config: pipeline.target_records must be positive")
	}
	if c.Pipeline.MaxPagesPerSource <= 0 {
		return errors.New("config: pipeline.max_pages_per_source must be positive")
	}
	if c.Ledger.Path == "" {
		return errors.New("config: ledger.path must be set")
	}
	if c.Sink.Path == "" {
		return errors.New("config: sink.path must be set")
	}
	return nil
}

// EnabledSources lists the enabled source names in fixed iteration
// order.
func (c *Config) EnabledSources() []string {
	var names []string
	if c.Sources.CanaryMedia.Enabled {
		names = append(names, "Canary Media")
	}
	if c.Sources.CleanTechnica.Enabled {
		names = append(names, "CleanTechnica")
	}
	if c.Sources.CTVC.Enabled {
		names = append(names, "CTVC")
	}
	if c.Sources.TechCrunch.Enabled {
		names = append(names, "TechCrunch")
	}
	return names
}
