package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

// PlanStore defines the interface for study plan persistence. Plan creation
// spans multiple writes (abandon previous, insert plan, bulk-insert days and
// tasks) and MUST run within a transaction via WithTx and
// store.RunInTransaction so a crash cannot leave a half-written plan or two
// active plans for the same (user, certification).
type PlanStore interface {
	// Create inserts a new study plan.
	// Returns ErrActivePlanExists if an active plan already exists for the
	// (user, certification) pair; the partial unique index on status makes
	// this safe against concurrent generation calls.
	Create(ctx context.Context, plan *domain.StudyPlan) error

	// GetByID retrieves a plan without its days.
	// Returns ErrPlanNotFound if the plan does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyPlan, error)

	// GetWithDays retrieves a plan aggregate: the plan, its days in date
	// order, and each day's tasks in position order.
	// Returns ErrPlanNotFound if the plan does not exist.
	GetWithDays(ctx context.Context, id uuid.UUID) (*domain.StudyPlan, error)

	// GetActive retrieves the active plan aggregate for a (user,
	// certification) pair.
	// Returns ErrPlanNotFound if no active plan exists.
	GetActive(ctx context.Context, userID, certificationID uuid.UUID) (*domain.StudyPlan, error)

	// AbandonActive transitions any active plan for the (user, certification)
	// pair to abandoned. Returns the number of plans abandoned (0 or 1).
	AbandonActive(ctx context.Context, userID, certificationID uuid.UUID) (int, error)

	// UpdateStatus sets the plan's status and bumps updatedAt.
	// Returns ErrPlanNotFound if the plan does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PlanStatus) error

	// Touch bumps the plan's updatedAt to now.
	// Returns ErrPlanNotFound if the plan does not exist.
	Touch(ctx context.Context, id uuid.UUID, now time.Time) error

	// CreateDays bulk-inserts day rows for a plan.
	CreateDays(ctx context.Context, days []domain.StudyPlanDay) error

	// DaysFrom returns the plan's days with a date at or after the given
	// date, in date order, without tasks.
	DaysFrom(ctx context.Context, planID uuid.UUID, date time.Time) ([]domain.StudyPlanDay, error)

	// CreateTasks bulk-inserts task rows.
	CreateTasks(ctx context.Context, tasks []domain.StudyPlanTask) error

	// TasksForDay returns a day's tasks in position order.
	TasksForDay(ctx context.Context, dayID uuid.UUID) ([]domain.StudyPlanTask, error)

	// DeleteTasks removes the given tasks by ID. Tasks completed by the
	// task-completion flow are deleted only when the caller explicitly lists
	// them (regeneration with keepCompletedTasks=false).
	DeleteTasks(ctx context.Context, taskIDs []uuid.UUID) error

	// WithTx returns a PlanStore bound to the given transaction.
	WithTx(tx *sql.Tx) PlanStore
}
