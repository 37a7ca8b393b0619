package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies pending migrations from dir. dir may be a plain path
// or a file:// URL. ErrNoChange is not an error.
func RunMigrations(dsn, dir string) error {
	m, err := migrate.New(migrationSource(dir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back every applied migration.
func RunMigrationsDown(dsn, dir string) error {
	m, err := migrate.New(migrationSource(dir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}

	return nil
}

func migrationSource(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}
