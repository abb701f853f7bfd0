package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// ReviewStatsStore implements the store.ReviewStatsStore interface using a
// PostgreSQL database as the storage backend.
type ReviewStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStatsStore creates a new PostgreSQL implementation of the
// ReviewStatsStore interface. If logger is nil, a default logger is used.
func NewReviewStatsStore(db store.DBTX, logger *slog.Logger) *ReviewStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_stats_store")),
	}
}

// Ensure ReviewStatsStore implements store.ReviewStatsStore
var _ store.ReviewStatsStore = (*ReviewStatsStore)(nil)

// WithTx returns a ReviewStatsStore bound to the given transaction.
func (s *ReviewStatsStore) WithTx(tx *sql.Tx) store.ReviewStatsStore {
	return &ReviewStatsStore{db: tx, logger: s.logger}
}

// Create implements store.ReviewStatsStore.Create
func (s *ReviewStatsStore) Create(ctx context.Context, stats *domain.ReviewStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stats.Validate(); err != nil {
		log.Warn("review stats validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()),
			slog.String("question_id", stats.QuestionID.String()))
		return err
	}

	query := `
		INSERT INTO review_stats
			(user_id, question_id, ease_factor, interval, repetitions,
			 next_review_at, last_reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		stats.UserID,
		stats.QuestionID,
		stats.EaseFactor,
		stats.Interval,
		stats.Repetitions,
		stats.NextReviewAt,
		nullableTime(stats.LastReviewedAt),
		stats.CreatedAt,
		stats.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "") {
			log.Warn("review stats already exist",
				slog.String("user_id", stats.UserID.String()),
				slog.String("question_id", stats.QuestionID.String()))
			return store.ErrReviewStatsExists
		}
		log.Error("failed to create review stats",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()),
			slog.String("question_id", stats.QuestionID.String()))
		return mapError(err)
	}

	log.Debug("review stats created",
		slog.String("user_id", stats.UserID.String()),
		slog.String("question_id", stats.QuestionID.String()))
	return nil
}

const statsColumns = `
	user_id, question_id, ease_factor, interval, repetitions,
	next_review_at, last_reviewed_at, created_at, updated_at
`

// Get implements store.ReviewStatsStore.Get
func (s *ReviewStatsStore) Get(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error) {
	query := `SELECT ` + statsColumns + `
		FROM review_stats
		WHERE user_id = $1 AND question_id = $2
	`
	return s.getWithQuery(ctx, query, userID, questionID)
}

// GetForUpdate implements store.ReviewStatsStore.GetForUpdate
func (s *ReviewStatsStore) GetForUpdate(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error) {
	query := `SELECT ` + statsColumns + `
		FROM review_stats
		WHERE user_id = $1 AND question_id = $2
		FOR UPDATE
	`
	return s.getWithQuery(ctx, query, userID, questionID)
}

func (s *ReviewStatsStore) getWithQuery(
	ctx context.Context,
	query string,
	userID, questionID uuid.UUID,
) (*domain.ReviewStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var stats domain.ReviewStats
	var lastReviewedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID, questionID).Scan(
		&stats.UserID,
		&stats.QuestionID,
		&stats.EaseFactor,
		&stats.Interval,
		&stats.Repetitions,
		&stats.NextReviewAt,
		&lastReviewedAt,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewStatsNotFound
		}
		log.Error("failed to get review stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()))
		return nil, mapError(err)
	}

	if lastReviewedAt.Valid {
		stats.LastReviewedAt = lastReviewedAt.Time
	}

	return &stats, nil
}

// Update implements store.ReviewStatsStore.Update
func (s *ReviewStatsStore) Update(ctx context.Context, stats *domain.ReviewStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stats.Validate(); err != nil {
		log.Warn("review stats validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()),
			slog.String("question_id", stats.QuestionID.String()))
		return err
	}

	query := `
		UPDATE review_stats
		SET ease_factor = $1, interval = $2, repetitions = $3,
			next_review_at = $4, last_reviewed_at = $5, updated_at = $6
		WHERE user_id = $7 AND question_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		stats.EaseFactor,
		stats.Interval,
		stats.Repetitions,
		stats.NextReviewAt,
		nullableTime(stats.LastReviewedAt),
		stats.UpdatedAt,
		stats.UserID,
		stats.QuestionID,
	)

	if err != nil {
		log.Error("failed to update review stats",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()),
			slog.String("question_id", stats.QuestionID.String()))
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrReviewStatsNotFound
	}

	return nil
}

// CountDue implements store.ReviewStatsStore.CountDue
func (s *ReviewStatsStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM review_stats
		WHERE user_id = $1 AND next_review_at <= $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, now).Scan(&count); err != nil {
		log.Error("failed to count due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, mapError(err)
	}

	return count, nil
}

// ActivityTimes implements store.ReviewStatsStore.ActivityTimes
func (s *ReviewStatsStore) ActivityTimes(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT reviewed_at
		FROM review_activity
		WHERE user_id = $1 AND reviewed_at >= $2
		ORDER BY reviewed_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		log.Error("failed to query review activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var times []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, mapError(err)
		}
		times = append(times, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return times, nil
}

// RecordActivity appends a review activity timestamp, feeding streak
// calculation. Called alongside stats updates within the same transaction.
func (s *ReviewStatsStore) RecordActivity(ctx context.Context, userID uuid.UUID, reviewedAt time.Time) error {
	query := `
		INSERT INTO review_activity (user_id, reviewed_at)
		VALUES ($1, $2)
	`
	if _, err := s.db.ExecContext(ctx, query, userID, reviewedAt); err != nil {
		return mapError(err)
	}
	return nil
}

// nullableTime converts a zero time to a NULL for storage.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
