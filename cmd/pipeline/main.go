package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spoclab/spoc-pipeline/pkg/config"
	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "spocpipe",
	Short: "SPOC log-export processing pipeline",
	Long: `spocpipe enriches discussion comments from a SPOC platform export with
topic labels and sentiment counts, accumulates per-student behavioral
counters, and writes the enriched roster, comment, and prompt tables
consumed by the downstream statistics stage.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full enrichment pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		return runPipeline(cfg)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
