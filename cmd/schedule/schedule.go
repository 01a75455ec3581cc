// Package schedule implements the schedule command that runs the crawl
// on a cron cadence.
package schedule

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	cmdcommon "github.com/petem573/dealflow/cmd/common"
	"github.com/petem573/dealflow/cmd/crawl"
	"github.com/petem573/dealflow/internal/logger"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the crawl on a recurring schedule",
		Long: `Start a long-running process that executes a crawl pass on the
given cron schedule. The processed-URL ledger makes repeated passes
incremental, so a schedule only ever ingests new articles.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")

			deps, err := cmdcommon.NewDeps(cfgFile, debug)
			if err != nil {
				return err
			}
			if err := deps.Config.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := deps.Logger.WithComponent("schedule")

			c := newCron(log)
			_, err = c.AddFunc(spec, func() {
				log.Info("Scheduled crawl starting", "cron", spec)
				if runErr := crawl.Run(ctx, deps.Config, deps.Logger); runErr != nil {
					log.Error("Scheduled crawl failed", "error", runErr)
				}
			})
			if err != nil {
				return fmt.Errorf("invalid cron spec %q: %w", spec, err)
			}

			c.Start()
			log.Info("Scheduler started", "cron", spec)

			<-ctx.Done()
			log.Info("Shutdown signal received")
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "0 7 * * *", "cron schedule for crawl passes")

	return cmd
}

// newCron builds the scheduler. A pass still running when the next
// tick fires is skipped, not overlapped: the ledger and sink have a
// single writer. A panicking pass is recovered so the schedule
// survives it.
func newCron(log logger.Interface) *cron.Cron {
	cl := cronLogger{log: log}
	return cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cl),
		cron.Recover(cl),
	))
}

// cronLogger adapts logger.Interface to cron.Logger.
type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Info(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
