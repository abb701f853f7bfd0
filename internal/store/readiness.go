package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

// ReadinessStore is a read-only view over the readiness scorer's output. The
// scorer is an external collaborator; this store only reads the per-domain
// scores it maintains. A failure here must abort plan generation rather than
// fall back to stale or default scores.
type ReadinessStore interface {
	// DomainScores returns the user's readiness per certification domain.
	DomainScores(ctx context.Context, userID, certificationID uuid.UUID) ([]domain.DomainReadiness, error)
}
