package config

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/domain/planner"
	"github.com/jwhitaker/certprep-api/internal/domain/srs"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"`
	Planner  PlannerConfig  `mapstructure:"planner"`

	// LearningPaths maps certification IDs to their static learning paths,
	// keyed by the certification UUID string.
	LearningPaths map[string][]LearningPathItem `mapstructure:"learning_paths"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication settings. The JWT secret is shared
// with the identity service that issues the access tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// SRSConfig tunes the review scheduler's load estimator.
type SRSConfig struct {
	TargetReviewMinutes int `mapstructure:"target_review_minutes" validate:"gt=0"`
	SecondsPerCard      int `mapstructure:"seconds_per_card" validate:"gt=0"`
}

// PlannerConfig tunes the study-plan builder's daily budgets and task costs.
type PlannerConfig struct {
	EarlyBudgetMinutes  int `mapstructure:"early_budget_minutes" validate:"gt=0"`
	MiddleBudgetMinutes int `mapstructure:"middle_budget_minutes" validate:"gt=0"`
	LateBudgetMinutes   int `mapstructure:"late_budget_minutes" validate:"gt=0"`
	LearningMinutes     int `mapstructure:"learning_minutes" validate:"gt=0"`
	PracticeMinutes     int `mapstructure:"practice_minutes" validate:"gt=0"`
	ReviewMinutes       int `mapstructure:"review_minutes" validate:"gt=0"`
	DrillMinutes        int `mapstructure:"drill_minutes" validate:"gt=0"`
}

// LearningPathItem is the configuration-file form of one learning-path entry.
type LearningPathItem struct {
	Order int    `mapstructure:"order" validate:"gte=1"`
	Title string `mapstructure:"title"`
}

// SRSParams converts the SRS section into scheduler parameters, keeping the
// algorithm's fixed constants.
func (c *Config) SRSParams() *srs.Params {
	params := srs.NewDefaultParams()
	params.TargetReviewMinutes = c.SRS.TargetReviewMinutes
	params.SecondsPerCard = c.SRS.SecondsPerCard
	return params
}

// PlannerConfig converts the planner section into the planner's config,
// keeping the fixed phase ratios.
func (c *Config) PlannerConfig() planner.Config {
	cfg := planner.DefaultConfig()
	cfg.EarlyBudgetMinutes = c.Planner.EarlyBudgetMinutes
	cfg.MiddleBudgetMinutes = c.Planner.MiddleBudgetMinutes
	cfg.LateBudgetMinutes = c.Planner.LateBudgetMinutes
	cfg.LearningMinutes = c.Planner.LearningMinutes
	cfg.PracticeMinutes = c.Planner.PracticeMinutes
	cfg.ReviewMinutes = c.Planner.ReviewMinutes
	cfg.DrillMinutes = c.Planner.DrillMinutes
	return cfg
}

// Catalog converts the learning-paths section into domain form, validating
// the certification ID keys.
func (c *Config) Catalog() (map[uuid.UUID][]domain.LearningPathItem, error) {
	catalog := make(map[uuid.UUID][]domain.LearningPathItem, len(c.LearningPaths))
	for rawID, items := range c.LearningPaths {
		certID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid certification ID %q in learning_paths: %w", rawID, err)
		}
		converted := make([]domain.LearningPathItem, 0, len(items))
		for _, item := range items {
			converted = append(converted, domain.LearningPathItem{
				Order: item.Order,
				Title: item.Title,
			})
		}
		catalog[certID] = converted
	}
	return catalog, nil
}
