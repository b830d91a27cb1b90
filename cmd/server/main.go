package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/config"
	"github.com/rpattn/marvel/internal/logging"
)

var (
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "marvel",
	Short: "Serve a sortable listing of Marvel characters",
	Long: `marvel serves the characters page, its JSON API and an xlsx export.

Characters are loaded from Postgres or from an in-memory store seeded
from a YAML file, depending on storage.driver.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, fromFile, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		if fromFile {
			logger.Debug("loaded config.yaml", zap.String("path", configPath))
		} else {
			logger.Debug("no config.yaml found, using defaults and env vars")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
