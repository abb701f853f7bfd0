// Package review implements the spaced-repetition review workflow: submitting
// ratings, postponing questions, sizing the daily review session, and the
// study streak.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

// ReviewRating carries a user's self-assessed recall quality for one question.
type ReviewRating struct {
	Quality domain.ReviewQuality `json:"quality"`
}

// DailySession describes today's recommended review workload.
type DailySession struct {
	TotalDue    int `json:"total_due"`
	Recommended int `json:"recommended"`
}

// ReviewService provides the review-scheduling operations.
type ReviewService interface {
	// SubmitReview records a rating for a question and reschedules it.
	// A first-ever rating creates the question's stats from the default
	// memory state before applying the rating.
	//
	// Returns ErrInvalidRating when the quality is not one of again, hard,
	// good, easy. The stats write and the activity record for the streak
	// commit in a single transaction.
	SubmitReview(
		ctx context.Context,
		userID uuid.UUID,
		questionID uuid.UUID,
		rating ReviewRating,
	) (*domain.ReviewStats, error)

	// PostponeReview pushes a question's next review forward by the given
	// number of days without touching its memory state.
	//
	// Returns ErrStatsNotFound if the question has never been reviewed and
	// ErrInvalidPostpone if days < 1.
	PostponeReview(
		ctx context.Context,
		userID uuid.UUID,
		questionID uuid.UUID,
		days int,
	) (*domain.ReviewStats, error)

	// DailySession reports how many questions are due now and how many of
	// them the user should review today under the time budget.
	DailySession(ctx context.Context, userID uuid.UUID) (*DailySession, error)

	// Streak returns the length of the user's current consecutive-day study
	// streak, in days. Zero when the user did not study today or yesterday.
	Streak(ctx context.Context, userID uuid.UUID) (int, error)
}

// Common error types for ReviewService
var (
	// ErrStatsNotFound indicates the question has no review history.
	ErrStatsNotFound = errors.New("review stats not found")

	// ErrInvalidRating indicates an unknown quality rating was provided.
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrInvalidPostpone indicates a postpone of less than one day.
	ErrInvalidPostpone = errors.New("postpone days must be at least 1")
)

// ServiceError wraps errors from the review service with the failing
// operation, so consumers can use errors.As instead of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// streakWindow bounds how far back activity is loaded for streak
// calculation. A streak longer than this is still reported correctly as long
// as the window exceeds any realistic run of consecutive days.
const streakWindow = 366 * 24 * time.Hour
