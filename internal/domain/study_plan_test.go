package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStudyPlan(t *testing.T) {
	t.Parallel()

	examDate := time.Now().UTC().AddDate(0, 2, 0)
	plan, err := NewStudyPlan(uuid.New(), uuid.New(), examDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Status != PlanStatusActive {
		t.Errorf("status = %q, want active", plan.Status)
	}
	if plan.ID == uuid.Nil {
		t.Error("plan ID must be generated")
	}
}

func TestStudyPlanValidate(t *testing.T) {
	t.Parallel()

	examDate := time.Now().UTC().AddDate(0, 2, 0)

	t.Run("missing user", func(t *testing.T) {
		_, err := NewStudyPlan(uuid.Nil, uuid.New(), examDate)
		if err != ErrPlanUserIDEmpty {
			t.Errorf("err = %v, want ErrPlanUserIDEmpty", err)
		}
	})

	t.Run("missing certification", func(t *testing.T) {
		_, err := NewStudyPlan(uuid.New(), uuid.Nil, examDate)
		if err != ErrPlanCertificationIDEmpty {
			t.Errorf("err = %v, want ErrPlanCertificationIDEmpty", err)
		}
	})

	t.Run("zero exam date", func(t *testing.T) {
		_, err := NewStudyPlan(uuid.New(), uuid.New(), time.Time{})
		if err != ErrPlanExamDateZero {
			t.Errorf("err = %v, want ErrPlanExamDateZero", err)
		}
	})
}

func TestStudyPlanTaskValidate(t *testing.T) {
	t.Parallel()

	task := StudyPlanTask{
		ID:               uuid.New(),
		DayID:            uuid.New(),
		Type:             TaskTypePractice,
		EstimatedMinutes: 30,
	}
	if err := task.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := task
	bad.Type = TaskType("homework")
	if err := bad.Validate(); err != ErrInvalidTaskType {
		t.Errorf("err = %v, want ErrInvalidTaskType", err)
	}

	zero := task
	zero.EstimatedMinutes = 0
	if err := zero.Validate(); err != ErrTaskMinutesInvalid {
		t.Errorf("err = %v, want ErrTaskMinutesInvalid", err)
	}
}

func TestStudyPlanTaskIsCompleted(t *testing.T) {
	t.Parallel()

	var task StudyPlanTask
	if task.IsCompleted() {
		t.Error("task without completedAt must not be completed")
	}

	now := time.Now().UTC()
	task.CompletedAt = &now
	if !task.IsCompleted() {
		t.Error("task with completedAt must be completed")
	}
}
