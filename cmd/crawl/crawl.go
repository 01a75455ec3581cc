// Package crawl implements the crawl command that runs one ingestion
// pass across the configured news sources.
package crawl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	cmdcommon "github.com/petem573/dealflow/cmd/common"
	"github.com/petem573/dealflow/internal/browser"
	"github.com/petem573/dealflow/internal/config"
	"github.com/petem573/dealflow/internal/fetcher"
	"github.com/petem573/dealflow/internal/ledger"
	"github.com/petem573/dealflow/internal/llm"
	"github.com/petem573/dealflow/internal/logger"
	"github.com/petem573/dealflow/internal/pipeline"
	"github.com/petem573/dealflow/internal/sink"
	"github.com/petem573/dealflow/internal/sources"
)

// Command returns the crawl command for use in the root command.
func Command() *cobra.Command {
	var (
		target   int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the configured sources for funding announcements",
		Long: `Run one ingestion pass: list articles from each enabled source,
classify and extract funding announcements, and append accepted records
to the output CSV. Articles already in the processed-URL ledger are
skipped, so repeated runs only ever do new work.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")

			deps, err := cmdcommon.NewDeps(cfgFile, debug)
			if err != nil {
				return err
			}

			cfg := deps.Config
			if cmd.Flags().Changed("target") {
				cfg.Pipeline.TargetRecords = target
			}
			if cmd.Flags().Changed("max-pages") {
				cfg.Pipeline.MaxPagesPerSource = maxPages
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return Run(ctx, cfg, deps.Logger)
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "stop after this many accepted records")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "listing pages to walk per source")

	return cmd
}

// Run wires the pipeline from configuration and executes one pass.
func Run(ctx context.Context, cfg *config.Config, log logger.Interface) error {
	led := ledger.New(cfg.Ledger.Path)
	defer led.Close()

	client := fetcher.New()
	opener := browser.NewRod()

	adapters := sources.Build(cfg, client, opener, log)
	if len(adapters) == 0 {
		log.Info("No sources enabled; nothing to crawl")
		return nil
	}

	llmClient, err := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("create llm client: %w", err)
	}

	p := pipeline.New(
		pipeline.Config{
			TargetRecords:     cfg.Pipeline.TargetRecords,
			MaxPagesPerSource: cfg.Pipeline.MaxPagesPerSource,
		},
		adapters,
		led,
		llm.NewClassifier(llmClient, log),
		llm.NewExtractor(llmClient, log),
		sink.NewCSV(cfg.Sink.Path, log),
		rate.NewLimiter(rate.Every(cfg.Pipeline.ServiceDelay), 1),
		log,
	)

	count, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	log.Info("Run complete", "records", count, "sink", cfg.Sink.Path)
	return nil
}
