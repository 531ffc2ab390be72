package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"travelbook/config"
)

const migrationSource = "file://migrations/postgres"

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)

	mig, err := migrate.New(migrationSource, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func run(config *config.Config, description string, action func(mig *migrate.Migrate) error) error {
	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := action(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration action (%s): %w", description, err)
	}

	log.Info().Str("action", description).Msg("Database migration action completed")

	return nil
}

// Up applies every pending migration.
func Up(config *config.Config) error {
	return run(config, "up", func(mig *migrate.Migrate) error {
		return mig.Up()
	})
}

// StepUp applies exactly one pending migration.
func StepUp(config *config.Config) error {
	return run(config, "step-up", func(mig *migrate.Migrate) error {
		return mig.Steps(1)
	})
}

// Down rolls back the most recent migration.
func Down(config *config.Config) error {
	return run(config, "down", func(mig *migrate.Migrate) error {
		return mig.Steps(-1)
	})
}

// Drop rolls back every applied migration.
func Drop(config *config.Config) error {
	return run(config, "drop", func(mig *migrate.Migrate) error {
		return mig.Down()
	})
}
