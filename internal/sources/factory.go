package sources

import (
	"github.com/petem573/dealflow/internal/browser"
	"github.com/petem573/dealflow/internal/config"
	"github.com/petem573/dealflow/internal/fetcher"
	"github.com/petem573/dealflow/internal/logger"
)

// Build constructs the enabled adapters in fixed iteration order. The
// pipeline walks sources in exactly this order on every run.
func Build(cfg *config.Config, client *fetcher.Client, opener browser.Opener, log logger.Interface) []Adapter {
	var adapters []Adapter

	if cfg.Sources.CanaryMedia.Enabled {
		adapters = append(adapters, NewCanaryMedia(cfg.Sources.CanaryMedia.URL, client, log))
	}
	if cfg.Sources.CleanTechnica.Enabled {
		adapters = append(adapters, NewCleanTechnica(cfg.Sources.CleanTechnica.URL, opener, log))
	}
	if cfg.Sources.CTVC.Enabled {
		adapters = append(adapters, NewCTVC(
			cfg.Sources.CTVC.URL, cfg.Sources.CTVC.SiteURL, opener, client, log))
	}
	if cfg.Sources.TechCrunch.Enabled {
		adapters = append(adapters, NewTechCrunch(cfg.Sources.TechCrunch.URL, client, log))
	}

	return adapters
}
