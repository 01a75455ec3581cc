// Package sources implements the sources command group for inspecting
// the configured news sources.
package sources

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/petem573/dealflow/cmd/common"
	"github.com/petem573/dealflow/internal/config"
)

// Command returns the sources command group.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Inspect configured sources",
	}

	cmd.AddCommand(newListCommand())

	return cmd
}

// row describes one configured source for display.
type row struct {
	name     string
	cfg      config.SourceConfig
	mode     string
	bulletin bool
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured sources",
		Long: `Display each configured source with its URL, fetch mode, and
whether it is currently enabled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")

			deps, err := cmdcommon.NewDeps(cfgFile, debug)
			if err != nil {
				return err
			}

			renderTable(deps.Config)
			return nil
		},
	}
}

func renderTable(cfg *config.Config) {
	rows := []row{
		{name: "Canary Media", cfg: cfg.Sources.CanaryMedia, mode: "http"},
		{name: "CleanTechnica", cfg: cfg.Sources.CleanTechnica, mode: "browser"},
		{name: "CTVC", cfg: cfg.Sources.CTVC, mode: "browser", bulletin: true},
		{name: "TechCrunch", cfg: cfg.Sources.TechCrunch, mode: "http"},
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "URL", "Mode", "Bulletin", "Enabled"})

	for _, r := range rows {
		t.AppendRow(table.Row{r.name, r.cfg.URL, r.mode, r.bulletin, r.cfg.Enabled})
	}

	t.Render()
}
