// Package cmd implements the command-line interface for dealflow.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/petem573/dealflow/cmd/crawl"
	cmddataset "github.com/petem573/dealflow/cmd/dataset"
	"github.com/petem573/dealflow/cmd/schedule"
	cmdsources "github.com/petem573/dealflow/cmd/sources"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "dealflow",
		Short: "A climate-tech funding announcement tracker",
		Long: `dealflow crawls climate-tech news sources, classifies funding
announcements, extracts structured deal records with a language model,
and appends them to a master CSV dataset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so OPENAI_API_KEY is available to every command.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dealflow version %s\n", version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(cmdsources.Command())
	rootCmd.AddCommand(schedule.Command())
	rootCmd.AddCommand(cmddataset.Command())
}
