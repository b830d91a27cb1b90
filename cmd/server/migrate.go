package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/db"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply (or with --down, revert) the Postgres schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := db.NewConnection(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		defer conn.Close()

		if migrateDown {
			if err := db.RollbackMigrations(conn.Pool); err != nil {
				return err
			}
			logger.Info("migrations rolled back")
			return nil
		}

		version, err := db.RunMigrations(conn.Pool)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Uint("version", version))
		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "revert all migrations")
}
