package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

// ReviewStatsStore defines the interface for review memory-state persistence.
type ReviewStatsStore interface {
	// Create saves a new stats entry for a (user, question) pair.
	// Returns ErrReviewStatsExists if an entry already exists for the pair.
	// Returns validation errors from the domain ReviewStats if data is invalid.
	Create(ctx context.Context, stats *domain.ReviewStats) error

	// Get retrieves stats by the combination of user ID and question ID.
	// Returns ErrReviewStatsNotFound if the entry does not exist.
	Get(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error)

	// GetForUpdate retrieves stats with a row-level lock (SELECT FOR UPDATE).
	// Use within a transaction when the row will be updated.
	// Returns ErrReviewStatsNotFound if the entry does not exist.
	GetForUpdate(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error)

	// Update modifies an existing stats entry, identified by the user and
	// question IDs on the stats object.
	// Returns ErrReviewStatsNotFound if the entry does not exist.
	Update(ctx context.Context, stats *domain.ReviewStats) error

	// CountDue returns how many of the user's questions have a next review
	// time at or before now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// ActivityTimes returns the user's review activity timestamps since the
	// given time, for streak calculation.
	ActivityTimes(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)

	// RecordActivity appends a review activity timestamp for the user.
	RecordActivity(ctx context.Context, userID uuid.UUID, reviewedAt time.Time) error

	// WithTx returns a ReviewStatsStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewStatsStore
}
