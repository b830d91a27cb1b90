package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/config"
	"github.com/rpattn/marvel/internal/db"
	"github.com/rpattn/marvel/internal/repository"
)

// openRepository returns the configured character repository and a cleanup func.
func openRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.CharacterRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		conn, err := db.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		version, err := db.RunMigrations(conn.Pool)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		logger.Info("database schema ready", zap.Uint("version", version))
		return repository.NewCharacterRepository(conn.Pool), conn.Close, nil

	default:
		repo := repository.NewMemoryCharacterRepository()
		if cfg.Storage.SeedFile != "" {
			n, err := repository.LoadSeedFile(ctx, repo, cfg.Storage.SeedFile)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				logger.Warn("seed file not found, starting empty", zap.String("path", cfg.Storage.SeedFile))
			case err != nil:
				return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
			default:
				logger.Info("seeded memory store", zap.Int("characters", n), zap.String("path", cfg.Storage.SeedFile))
			}
		}
		return repo, func() {}, nil
	}
}
