package main

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/db"
	"github.com/rpattn/marvel/internal/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load characters from a YAML seed file into Postgres",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Storage.SeedFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no seed file given and storage.seed_file is empty")
		}

		ctx := cmd.Context()
		conn, err := db.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer conn.Close()

		if _, err := db.RunMigrations(conn.Pool); err != nil {
			return err
		}

		var seeded int
		err = conn.WithTx(ctx, func(tx pgx.Tx) error {
			n, err := repository.LoadSeedFile(ctx, repository.NewCharacterRepository(tx), path)
			seeded = n
			return err
		})
		if err != nil {
			return err
		}

		logger.Info("seeded characters", zap.Int("characters", seeded), zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d characters\n", seeded)
		return nil
	},
}
