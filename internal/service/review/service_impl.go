package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/domain/srs"
	"github.com/jwhitaker/certprep-api/internal/domain/streak"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db         *sql.DB
	statsStore store.ReviewStatsStore
	srsService srs.Service
	logger     *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	db *sql.DB,
	statsStore store.ReviewStatsStore,
	srsService srs.Service,
	logger *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:         db,
		statsStore: statsStore,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	questionID uuid.UUID,
	rating ReviewRating,
) (*domain.ReviewStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review rating",
		slog.String("user_id", userID.String()),
		slog.String("question_id", questionID.String()),
		slog.String("quality", string(rating.Quality)))

	if !rating.Quality.IsValid() {
		log.Warn("invalid review rating",
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()),
			slog.String("quality", string(rating.Quality)))
		return nil, ErrInvalidRating
	}

	now := time.Now().UTC()

	var updatedStats *domain.ReviewStats
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		statsStore := s.statsStore.WithTx(tx)

		isNew := false
		stats, err := statsStore.GetForUpdate(ctx, userID, questionID)
		if err != nil {
			if !errors.Is(err, store.ErrReviewStatsNotFound) {
				return fmt.Errorf("failed to get stats: %w", err)
			}
			// First rating for this question: start from the default
			// memory state.
			isNew = true
			stats, err = domain.NewReviewStats(userID, questionID)
			if err != nil {
				return fmt.Errorf("failed to create new stats: %w", err)
			}
		}

		newStats, err := s.srsService.CalculateNextReview(stats, rating.Quality, now)
		if err != nil {
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if isNew {
			if err := statsStore.Create(ctx, newStats); err != nil {
				return fmt.Errorf("failed to create stats: %w", err)
			}
		} else {
			if err := statsStore.Update(ctx, newStats); err != nil {
				return fmt.Errorf("failed to update stats: %w", err)
			}
		}

		if err := statsStore.RecordActivity(ctx, userID, now); err != nil {
			return fmt.Errorf("failed to record review activity: %w", err)
		}

		updatedStats = newStats
		return nil
	})

	if err != nil {
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()))
		return nil, &ServiceError{Operation: "submit_review", Message: "failed to submit review", Err: err}
	}

	log.Debug("review rating processed",
		slog.String("user_id", userID.String()),
		slog.String("question_id", questionID.String()),
		slog.String("quality", string(rating.Quality)),
		slog.Float64("ease_factor", updatedStats.EaseFactor),
		slog.Int("interval", updatedStats.Interval),
		slog.Time("next_review_at", updatedStats.NextReviewAt))

	return updatedStats, nil
}

// PostponeReview implements ReviewService.PostponeReview.
func (s *reviewServiceImpl) PostponeReview(
	ctx context.Context,
	userID uuid.UUID,
	questionID uuid.UUID,
	days int,
) (*domain.ReviewStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if days < 1 {
		log.Warn("invalid postpone request",
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()),
			slog.Int("days", days))
		return nil, ErrInvalidPostpone
	}

	now := time.Now().UTC()

	var updatedStats *domain.ReviewStats
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		statsStore := s.statsStore.WithTx(tx)

		stats, err := statsStore.GetForUpdate(ctx, userID, questionID)
		if err != nil {
			if errors.Is(err, store.ErrReviewStatsNotFound) {
				return ErrStatsNotFound
			}
			return fmt.Errorf("failed to get stats: %w", err)
		}

		newStats, err := s.srsService.PostponeReview(stats, days, now)
		if err != nil {
			return fmt.Errorf("failed to postpone review: %w", err)
		}

		if err := statsStore.Update(ctx, newStats); err != nil {
			return fmt.Errorf("failed to update stats: %w", err)
		}

		updatedStats = newStats
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrStatsNotFound) {
			log.Debug("postpone for unseen question",
				slog.String("user_id", userID.String()),
				slog.String("question_id", questionID.String()))
			return nil, err
		}

		log.Error("failed to postpone review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()))
		return nil, &ServiceError{Operation: "postpone_review", Message: "failed to postpone review", Err: err}
	}

	log.Debug("review postponed",
		slog.String("user_id", userID.String()),
		slog.String("question_id", questionID.String()),
		slog.Int("days", days),
		slog.Time("next_review_at", updatedStats.NextReviewAt))

	return updatedStats, nil
}

// DailySession implements ReviewService.DailySession.
func (s *reviewServiceImpl) DailySession(
	ctx context.Context,
	userID uuid.UUID,
) (*DailySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	totalDue, err := s.statsStore.CountDue(ctx, userID, time.Now().UTC())
	if err != nil {
		log.Error("failed to count due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, &ServiceError{Operation: "daily_session", Message: "failed to count due reviews", Err: err}
	}

	session := &DailySession{
		TotalDue:    totalDue,
		Recommended: s.srsService.RecommendedReviews(totalDue),
	}

	log.Debug("daily session sized",
		slog.String("user_id", userID.String()),
		slog.Int("total_due", session.TotalDue),
		slog.Int("recommended", session.Recommended))

	return session, nil
}

// Streak implements ReviewService.Streak.
func (s *reviewServiceImpl) Streak(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	activity, err := s.statsStore.ActivityTimes(ctx, userID, now.Add(-streakWindow))
	if err != nil {
		log.Error("failed to load review activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, &ServiceError{Operation: "streak", Message: "failed to load review activity", Err: err}
	}

	return streak.Length(activity, now), nil
}
