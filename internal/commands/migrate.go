package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var down bool
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return runMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, direction(down, steps))
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll migrations back instead of applying them")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply or roll back (0 means all)")

	return cmd
}

// direction builds a migrationPlan from the migrate flags. Zero steps means
// every pending migration in the chosen direction.
func direction(down bool, steps int) migrationPlan {
	if steps < 0 {
		steps = -steps
	}
	return migrationPlan{down: down, steps: steps}
}

type migrationPlan struct {
	down  bool
	steps int
}

func (p migrationPlan) apply(m *migrate.Migrate) error {
	switch {
	case p.steps > 0 && p.down:
		return m.Steps(-p.steps)
	case p.steps > 0:
		return m.Steps(p.steps)
	case p.down:
		return m.Down()
	default:
		return m.Up()
	}
}

// runMigrations opens a database/sql connection through the pgx stdlib driver
// and runs plan against the migrations at migrationsPath.
func runMigrations(logger *slog.Logger, databaseURL, migrationsPath string, plan migrationPlan) error {
	logger.Info("Running database migrations...", slog.String("source", migrationsPath), slog.Bool("down", plan.down), slog.Int("steps", plan.steps))

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	runErr := plan.apply(m)
	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", runErr)
	}

	if errors.Is(runErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
