package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations exposes the embedded SQL migrations.
func Migrations() embed.FS {
	return migrationFiles
}

// RunMigrations applies every pending up migration. An already current
// schema is not an error.
func RunMigrations(pool *pgxpool.Pool) (version uint, err error) {
	m, err := newMigrator(pool)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := closeMigrator(m); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}

// RollbackMigrations reverts every applied migration.
func RollbackMigrations(pool *pgxpool.Pool) (err error) {
	m, err := newMigrator(pool)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeMigrator(m); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// migrationCloser is satisfied by *migrate.Migrate.
type migrationCloser interface {
	Close() (source error, database error)
}

// closeMigrator releases the migration source and the dedicated database
// connection held by the driver. The pool itself stays open.
func closeMigrator(m migrationCloser) error {
	sourceErr, databaseErr := m.Close()
	if sourceErr != nil || databaseErr != nil {
		return fmt.Errorf("failed to close migrator: %w", errors.Join(sourceErr, databaseErr))
	}
	return nil
}

func newMigrator(pool *pgxpool.Pool) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(pool), &migratepgx.Config{})
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
