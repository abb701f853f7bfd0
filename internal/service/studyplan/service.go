// Package studyplan implements study-plan generation and regeneration: it
// turns readiness scores, learning-path progress and the review backlog into
// a day-by-day schedule running up to the target exam date.
package studyplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

// MaxPlanDays bounds the plan horizon. An exam date further out than this is
// rejected as a client error.
const MaxPlanDays = 730

// RegenerateResult summarizes what a regeneration changed.
type RegenerateResult struct {
	Plan           *domain.StudyPlan `json:"plan"`
	TasksRemoved   int               `json:"tasks_removed"`
	TasksGenerated int               `json:"tasks_generated"`
}

// StudyPlanService provides plan generation and regeneration.
type StudyPlanService interface {
	// Generate builds a fresh study plan from today through the target exam
	// date inclusive. Any previous active plan for the (user, certification)
	// pair is abandoned in the same transaction that inserts the new plan,
	// so there is never a moment with two active plans or none half-written.
	//
	// Returns ErrExamDateNotFuture if the exam date is today or earlier and
	// ErrExamDateTooFar if the horizon exceeds MaxPlanDays. A readiness
	// lookup failure aborts generation; the engine never plans against
	// default or stale scores.
	Generate(
		ctx context.Context,
		userID uuid.UUID,
		certificationID uuid.UUID,
		targetExamDate time.Time,
	) (*domain.StudyPlan, error)

	// Regenerate rebuilds the remaining days (today onward) of an active
	// plan against current readiness, progress and review backlog. Past
	// days are never touched. With keepCompletedTasks, completed tasks on
	// remaining days survive and new tasks only fill the time budget they
	// leave; otherwise every task on remaining days is replaced.
	//
	// Returns ErrPlanNotFound if the plan does not exist or belongs to
	// another user, and ErrPlanNotActive for completed or abandoned plans.
	// Neither case performs any write.
	Regenerate(
		ctx context.Context,
		userID uuid.UUID,
		planID uuid.UUID,
		keepCompletedTasks bool,
	) (*RegenerateResult, error)

	// ActivePlan returns the user's active plan aggregate for a
	// certification. Returns ErrPlanNotFound if there is none.
	ActivePlan(
		ctx context.Context,
		userID uuid.UUID,
		certificationID uuid.UUID,
	) (*domain.StudyPlan, error)
}

// Common error types for StudyPlanService
var (
	// ErrPlanNotFound indicates the plan does not exist or is not visible
	// to the requesting user.
	ErrPlanNotFound = errors.New("study plan not found")

	// ErrPlanNotActive indicates a write was attempted on a completed or
	// abandoned plan.
	ErrPlanNotActive = errors.New("study plan is not active")

	// ErrExamDateNotFuture indicates the target exam date is not after today.
	ErrExamDateNotFuture = errors.New("target exam date must be in the future")

	// ErrExamDateTooFar indicates the plan horizon exceeds MaxPlanDays.
	ErrExamDateTooFar = errors.New("target exam date is too far in the future")

	// ErrReadinessUnavailable indicates readiness scores could not be read.
	ErrReadinessUnavailable = errors.New("readiness scores unavailable")
)

// ServiceError wraps errors from the study plan service with the failing
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
