package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PlanStatus represents the lifecycle state of a study plan.
type PlanStatus string

// Possible study plan statuses
const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusAbandoned PlanStatus = "abandoned"
)

// IsValid reports whether the status is one of the known plan statuses.
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusAbandoned:
		return true
	default:
		return false
	}
}

// TaskType categorizes the work a study plan task asks of the user.
type TaskType string

// Possible task types
const (
	TaskTypeLearning TaskType = "learning" // Work through a learning-path item
	TaskTypePractice TaskType = "practice" // Practice questions in one domain
	TaskTypeReview   TaskType = "review"   // Spaced-repetition review session
	TaskTypeDrill    TaskType = "drill"    // Timed drill, domain-specific or mixed
)

// IsValid reports whether the task type is one of the known types.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeLearning, TaskTypePractice, TaskTypeReview, TaskTypeDrill:
		return true
	default:
		return false
	}
}

// Plan-specific validation errors
var (
	ErrPlanIDEmpty              = errors.New("study plan ID cannot be empty")
	ErrPlanUserIDEmpty          = errors.New("study plan user ID cannot be empty")
	ErrPlanCertificationIDEmpty = errors.New("study plan certification ID cannot be empty")
	ErrPlanExamDateZero         = errors.New("study plan target exam date cannot be zero")
	ErrTaskMinutesInvalid       = errors.New("task estimated minutes must be positive")
)

// StudyPlan is a day-by-day preparation schedule for one user working toward
// one certification exam. At most one plan per (user, certification) is
// active at any time; generating a new plan abandons the previous one.
type StudyPlan struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	CertificationID uuid.UUID  `json:"certification_id"`
	TargetExamDate  time.Time  `json:"target_exam_date"`
	Status          PlanStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Days is populated when the plan is loaded as an aggregate.
	Days []StudyPlanDay `json:"days,omitempty"`
}

// NewStudyPlan creates an active study plan for the given user and
// certification. Days are generated separately by the planner.
func NewStudyPlan(userID, certificationID uuid.UUID, targetExamDate time.Time) (*StudyPlan, error) {
	now := time.Now().UTC()
	plan := &StudyPlan{
		ID:              uuid.New(),
		UserID:          userID,
		CertificationID: certificationID,
		TargetExamDate:  targetExamDate,
		Status:          PlanStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate checks if the StudyPlan has valid data.
func (p *StudyPlan) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPlanIDEmpty
	}

	if p.UserID == uuid.Nil {
		return ErrPlanUserIDEmpty
	}

	if p.CertificationID == uuid.Nil {
		return ErrPlanCertificationIDEmpty
	}

	if p.TargetExamDate.IsZero() {
		return ErrPlanExamDateZero
	}

	if !p.Status.IsValid() {
		return ErrInvalidPlanStatus
	}

	return nil
}

// StudyPlanDay is one calendar date within a study plan. A plan has exactly
// one day per date from generation start to the target exam date inclusive.
type StudyPlanDay struct {
	ID         uuid.UUID `json:"id"`
	PlanID     uuid.UUID `json:"plan_id"`
	Date       time.Time `json:"date"`
	IsComplete bool      `json:"is_complete"`

	Tasks []StudyPlanTask `json:"tasks,omitempty"`
}

// NewStudyPlanDay creates a day row for the given plan and date.
func NewStudyPlanDay(planID uuid.UUID, date time.Time) StudyPlanDay {
	return StudyPlanDay{
		ID:     uuid.New(),
		PlanID: planID,
		Date:   date,
	}
}

// StudyPlanTask is a single unit of scheduled work within a day. completedAt
// is written by the task-completion flow, not by the scheduling engine.
type StudyPlanTask struct {
	ID               uuid.UUID  `json:"id"`
	DayID            uuid.UUID  `json:"day_id"`
	Position         int        `json:"position"` // Order within the day
	Type             TaskType   `json:"type"`
	TargetID         *string    `json:"target_id"` // Learning-path ordinal or domain ID; nil for mixed drills
	EstimatedMinutes int        `json:"estimated_minutes"`
	CompletedAt      *time.Time `json:"completed_at"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Validate checks if the StudyPlanTask has valid data.
func (t *StudyPlanTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrPlanIDEmpty
	}

	if !t.Type.IsValid() {
		return ErrInvalidTaskType
	}

	if t.EstimatedMinutes <= 0 {
		return ErrTaskMinutesInvalid
	}

	return nil
}

// IsCompleted reports whether the task has been marked done.
func (t *StudyPlanTask) IsCompleted() bool {
	return t.CompletedAt != nil
}
