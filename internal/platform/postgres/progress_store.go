package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// ProgressStore implements the store.ProgressStore interface using a
// PostgreSQL database as the storage backend.
type ProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger is used.
func NewProgressStore(db store.DBTX, logger *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure ProgressStore implements store.ProgressStore
var _ store.ProgressStore = (*ProgressStore)(nil)

// CompletedOrdinals implements store.ProgressStore.CompletedOrdinals
func (s *ProgressStore) CompletedOrdinals(ctx context.Context, userID, certificationID uuid.UUID) (map[int]bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT item_ordinal
		FROM learning_path_progress
		WHERE user_id = $1 AND certification_id = $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, certificationID)
	if err != nil {
		log.Error("failed to query learning path progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	completed := make(map[int]bool)
	for rows.Next() {
		var ordinal int
		if err := rows.Scan(&ordinal); err != nil {
			return nil, mapError(err)
		}
		completed[ordinal] = true
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return completed, nil
}
