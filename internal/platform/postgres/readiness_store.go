package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// ReadinessStore implements the store.ReadinessStore interface using a
// PostgreSQL database as the storage backend. It reads the per-domain scores
// maintained by the readiness scorer and never writes them.
type ReadinessStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReadinessStore creates a new PostgreSQL implementation of the
// ReadinessStore interface. If logger is nil, a default logger is used.
func NewReadinessStore(db store.DBTX, logger *slog.Logger) *ReadinessStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReadinessStore{
		db:     db,
		logger: logger.With(slog.String("component", "readiness_store")),
	}
}

// Ensure ReadinessStore implements store.ReadinessStore
var _ store.ReadinessStore = (*ReadinessStore)(nil)

// DomainScores implements store.ReadinessStore.DomainScores
func (s *ReadinessStore) DomainScores(ctx context.Context, userID, certificationID uuid.UUID) ([]domain.DomainReadiness, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT domain_id, domain_name, score
		FROM domain_readiness
		WHERE user_id = $1 AND certification_id = $2
		ORDER BY domain_id
	`
	rows, err := s.db.QueryContext(ctx, query, userID, certificationID)
	if err != nil {
		log.Error("failed to query domain readiness",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("certification_id", certificationID.String()))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var scores []domain.DomainReadiness
	for rows.Next() {
		var dr domain.DomainReadiness
		if err := rows.Scan(&dr.DomainID, &dr.DomainName, &dr.Score); err != nil {
			return nil, mapError(err)
		}
		scores = append(scores, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return scores, nil
}
