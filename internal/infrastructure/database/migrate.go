package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations brings the schema up to the newest migration under
// migrationsPath. A dirty schema version aborts; it needs a manual forced
// version before the service can start.
func RunMigrations(dsn string, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	switch err := m.Up(); {
	case err == nil:
		version, _, _ := m.Version()
		log.Printf("schema migrated to version %d", version)
	case errors.Is(err, migrate.ErrNoChange):
		version, dirty, _ := m.Version()
		if dirty {
			return fmt.Errorf("schema version %d is dirty", version)
		}
		log.Printf("schema up to date at version %d", version)
	default:
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
