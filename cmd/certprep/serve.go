package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhitaker/certprep-api/internal/config"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
)

// newServeCmd builds the serve command, which runs the HTTP API server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log := logger.Setup(cfg.Server.LogLevel)
			log.Info("Server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel)

			db, err := setupDatabase(cfg, log)
			if err != nil {
				return err
			}

			app, err := newApplication(cfg, log, db)
			if err != nil {
				// newApplication does not take ownership of the connection
				// until it succeeds.
				if closeErr := db.Close(); closeErr != nil {
					log.Error("Error closing database connection", "error", closeErr)
				}
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.Run(cmd.Context())
		},
	}
}
