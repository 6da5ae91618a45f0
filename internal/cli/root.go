// Package cli implements the command frontend over the retrieval core.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"recall/internal/config"
	"recall/internal/service"
)

var (
	cfgPath string
	dataDir string
	verbose bool

	cfg *config.AppConfig
	svc *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Index and search local conversation history",
	Long: `Recall stores short conversation records in a local corpus and answers
similarity queries over them using term-weighted vectors.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "corpus data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	var err error
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	svc, err = service.Open(cfg)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
