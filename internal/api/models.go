package api

import (
	"time"

	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/service/review"
	"github.com/jwhitaker/certprep-api/internal/service/studyplan"
)

// ReviewStatsResponse is the scheduling tuple returned after rating or
// postponing a question.
type ReviewStatsResponse struct {
	UserID       string     `json:"userId"`
	QuestionID   string     `json:"questionId"`
	EaseFactor   float64    `json:"easeFactor"`
	Interval     int        `json:"interval"`
	Repetitions  int        `json:"repetitions"`
	NextReviewAt time.Time  `json:"nextReviewAt"`
	LastReviewed *time.Time `json:"lastReviewedAt,omitempty"`
}

// DailyLoadResponse reports today's review workload.
type DailyLoadResponse struct {
	TotalDue    int `json:"totalDue"`
	Recommended int `json:"recommended"`
}

// StreakResponse reports the current consecutive-day study streak.
type StreakResponse struct {
	Streak int `json:"streak"`
}

// TaskResponse is one scheduled unit of work within a plan day.
type TaskResponse struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	TargetID         *string    `json:"targetId"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	CompletedAt      *time.Time `json:"completedAt"`
	Notes            string     `json:"notes"`
}

// DayResponse is one calendar date within a plan.
type DayResponse struct {
	ID         string         `json:"id"`
	Date       string         `json:"date"` // YYYY-MM-DD
	IsComplete bool           `json:"isComplete"`
	Tasks      []TaskResponse `json:"tasks"`
}

// PlanResponse is the full study plan aggregate.
type PlanResponse struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	CertificationID string        `json:"certificationId"`
	TargetExamDate  string        `json:"targetExamDate"` // YYYY-MM-DD
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Days            []DayResponse `json:"days"`
}

// RegenerateResponse summarizes a plan regeneration.
type RegenerateResponse struct {
	Plan           PlanResponse `json:"plan"`
	TasksRemoved   int          `json:"tasksRemoved"`
	TasksGenerated int          `json:"tasksGenerated"`
}

const dateLayout = "2006-01-02"

// statsToResponse converts domain review stats to the wire form.
func statsToResponse(stats *domain.ReviewStats) ReviewStatsResponse {
	resp := ReviewStatsResponse{
		UserID:       stats.UserID.String(),
		QuestionID:   stats.QuestionID.String(),
		EaseFactor:   stats.EaseFactor,
		Interval:     stats.Interval,
		Repetitions:  stats.Repetitions,
		NextReviewAt: stats.NextReviewAt,
	}
	if !stats.LastReviewedAt.IsZero() {
		t := stats.LastReviewedAt
		resp.LastReviewed = &t
	}
	return resp
}

// planToResponse converts a plan aggregate to the wire form.
func planToResponse(plan *domain.StudyPlan) PlanResponse {
	days := make([]DayResponse, 0, len(plan.Days))
	for _, day := range plan.Days {
		tasks := make([]TaskResponse, 0, len(day.Tasks))
		for _, task := range day.Tasks {
			tasks = append(tasks, TaskResponse{
				ID:               task.ID.String(),
				Type:             string(task.Type),
				TargetID:         task.TargetID,
				EstimatedMinutes: task.EstimatedMinutes,
				CompletedAt:      task.CompletedAt,
				Notes:            task.Notes,
			})
		}
		days = append(days, DayResponse{
			ID:         day.ID.String(),
			Date:       day.Date.Format(dateLayout),
			IsComplete: day.IsComplete,
			Tasks:      tasks,
		})
	}

	return PlanResponse{
		ID:              plan.ID.String(),
		UserID:          plan.UserID.String(),
		CertificationID: plan.CertificationID.String(),
		TargetExamDate:  plan.TargetExamDate.Format(dateLayout),
		Status:          string(plan.Status),
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
		Days:            days,
	}
}

// loadToResponse converts a daily session summary to the wire form.
func loadToResponse(session *review.DailySession) DailyLoadResponse {
	return DailyLoadResponse{
		TotalDue:    session.TotalDue,
		Recommended: session.Recommended,
	}
}

// regenerateToResponse converts a regeneration result to the wire form.
func regenerateToResponse(result *studyplan.RegenerateResult) RegenerateResponse {
	return RegenerateResponse{
		Plan:           planToResponse(result.Plan),
		TasksRemoved:   result.TasksRemoved,
		TasksGenerated: result.TasksGenerated,
	}
}
