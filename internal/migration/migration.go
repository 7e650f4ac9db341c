package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const advisoryLockKey int64 = 7_381_220_554

// RunMigrations applies all embedded migrations. It must be run explicitly
// by the migrator entrypoint.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var locked bool
	if err := db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", advisoryLockKey).Scan(&locked); err != nil {
		return fmt.Errorf("acquire advisory lock: %w", err)
	}
	if !locked {
		return errors.New("another migration process holds the advisory lock")
	}
	defer func() {
		var released bool
		_ = db.QueryRow("SELECT pg_advisory_unlock($1)", advisoryLockKey).Scan(&released)
	}()

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if _, err := ensureNotDirty(migrator); err != nil {
		return err
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	if _, err := ensureNotDirty(migrator); err != nil {
		return err
	}

	return nil
}

func ensureNotDirty(migrator *migrate.Migrate) (uint, error) {
	if migrator == nil {
		return 0, errors.New("migrator is required")
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, nil
		}
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return version, nil
}
