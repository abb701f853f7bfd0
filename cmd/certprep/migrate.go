package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhitaker/certprep-api/internal/config"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/platform/postgres"
)

// newMigrateCmd builds the migrate command with up, down, and status
// subcommands. Migrations are embedded in the binary, so no source checkout
// is needed at runtime.
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrationDB(postgres.MigrateUp)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrationDB(postgres.MigrateDown)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the status of all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrationDB(postgres.MigrateStatus)
			},
		},
	)

	return cmd
}

// withMigrationDB loads configuration, opens a database connection, and runs
// the given migration operation against it.
func withMigrationDB(op func(*sql.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Error closing database connection", "error", closeErr)
		}
	}()

	return op(db)
}
