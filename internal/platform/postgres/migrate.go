package postgres

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// slogGooseLogger adapts goose's logger interface to slog so migration
// output lands in the same structured stream as everything else.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}

// MigrateUp applies all pending migrations from the embedded set.
func MigrateUp(db *sql.DB) error {
	return runGoose(db, goose.Up)
}

// MigrateDown rolls back the most recently applied migration.
func MigrateDown(db *sql.DB) error {
	return runGoose(db, goose.Down)
}

// MigrateStatus logs the status of each known migration.
func MigrateStatus(db *sql.DB) error {
	return runGoose(db, goose.Status)
}

func runGoose(db *sql.DB, op func(*sql.DB, string, ...goose.OptionsFunc) error) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := op(db, "migrations"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
