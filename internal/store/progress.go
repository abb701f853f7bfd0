package store

import (
	"context"

	"github.com/google/uuid"
)

// ProgressStore exposes the user's learning-path completion state. The
// catalog itself is static configuration; only completion is persisted.
type ProgressStore interface {
	// CompletedOrdinals returns the set of learning-path item ordinals the
	// user has completed for a certification.
	CompletedOrdinals(ctx context.Context, userID, certificationID uuid.UUID) (map[int]bool, error)
}
