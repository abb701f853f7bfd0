package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jwhitaker/certprep-api/internal/config"
	"github.com/jwhitaker/certprep-api/internal/domain/srs"
	"github.com/jwhitaker/certprep-api/internal/platform/postgres"
	"github.com/jwhitaker/certprep-api/internal/service/auth"
	"github.com/jwhitaker/certprep-api/internal/service/review"
	"github.com/jwhitaker/certprep-api/internal/service/studyplan"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	statsStore     store.ReviewStatsStore
	planStore      store.PlanStore
	progressStore  store.ProgressStore
	readinessStore store.ReadinessStore

	// Services
	jwtService       auth.JWTService
	srsService       srs.Service
	reviewService    review.ReviewService
	studyPlanService studyplan.StudyPlanService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetimeMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.statsStore = postgres.NewReviewStatsStore(db, logger)
	app.planStore = postgres.NewPlanStore(db, logger)
	app.progressStore = postgres.NewProgressStore(db, logger)
	app.readinessStore = postgres.NewReadinessStore(db, logger)

	app.srsService = srs.NewServiceWithParams(cfg.SRSParams())

	app.reviewService = review.NewReviewService(db, app.statsStore, app.srsService, logger)

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load learning-path catalog: %w", err)
	}
	app.studyPlanService = studyplan.NewStudyPlanService(
		db,
		app.planStore,
		app.statsStore,
		app.progressStore,
		app.readinessStore,
		catalog,
		cfg.PlannerConfig(),
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
