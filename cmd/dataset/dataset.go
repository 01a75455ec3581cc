// Package dataset implements the dataset command for generating mock
// funding-event CSV files.
package dataset

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/petem573/dealflow/internal/dataset"
)

// Command returns the dataset command.
func Command() *cobra.Command {
	var (
		count int
		out   string
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate a mock funding-event dataset",
		Long: `Generate a CSV of plausible mock funding events for testing
downstream analysis without crawling any live sources.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			events := dataset.NewGenerator(seed).Generate(count)
			if err := dataset.WriteCSV(out, events); err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}

			cmd.Printf("Generated %q with %d mock records.\n", out, count)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 25, "number of mock records to generate")
	cmd.Flags().StringVar(&out, "out", "funding_events.csv", "output CSV path")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")

	return cmd
}
