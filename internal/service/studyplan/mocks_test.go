package studyplan

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// fakePlanStore is an in-memory PlanStore for service tests. It ignores the
// transaction handle; atomicity is the transaction helper's concern.
type fakePlanStore struct {
	plans map[uuid.UUID]*domain.StudyPlan
	days  map[uuid.UUID][]domain.StudyPlanDay  // by plan ID
	tasks map[uuid.UUID][]domain.StudyPlanTask // by day ID

	createErr error
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{
		plans: make(map[uuid.UUID]*domain.StudyPlan),
		days:  make(map[uuid.UUID][]domain.StudyPlanDay),
		tasks: make(map[uuid.UUID][]domain.StudyPlanTask),
	}
}

func (f *fakePlanStore) Create(ctx context.Context, plan *domain.StudyPlan) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, p := range f.plans {
		if p.UserID == plan.UserID && p.CertificationID == plan.CertificationID &&
			p.Status == domain.PlanStatusActive && plan.Status == domain.PlanStatusActive {
			return store.ErrActivePlanExists
		}
	}
	copied := *plan
	copied.Days = nil
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlanStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, store.ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (f *fakePlanStore) GetWithDays(ctx context.Context, id uuid.UUID) (*domain.StudyPlan, error) {
	plan, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	days := append([]domain.StudyPlanDay(nil), f.days[id]...)
	for i := range days {
		days[i].Tasks = append([]domain.StudyPlanTask(nil), f.tasks[days[i].ID]...)
	}
	plan.Days = days
	return plan, nil
}

func (f *fakePlanStore) GetActive(ctx context.Context, userID, certificationID uuid.UUID) (*domain.StudyPlan, error) {
	for id, p := range f.plans {
		if p.UserID == userID && p.CertificationID == certificationID && p.Status == domain.PlanStatusActive {
			return f.GetWithDays(ctx, id)
		}
	}
	return nil, store.ErrPlanNotFound
}

func (f *fakePlanStore) AbandonActive(ctx context.Context, userID, certificationID uuid.UUID) (int, error) {
	abandoned := 0
	for _, p := range f.plans {
		if p.UserID == userID && p.CertificationID == certificationID && p.Status == domain.PlanStatusActive {
			p.Status = domain.PlanStatusAbandoned
			abandoned++
		}
	}
	return abandoned, nil
}

func (f *fakePlanStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PlanStatus) error {
	plan, ok := f.plans[id]
	if !ok {
		return store.ErrPlanNotFound
	}
	plan.Status = status
	return nil
}

func (f *fakePlanStore) Touch(ctx context.Context, id uuid.UUID, now time.Time) error {
	plan, ok := f.plans[id]
	if !ok {
		return store.ErrPlanNotFound
	}
	plan.UpdatedAt = now
	return nil
}

func (f *fakePlanStore) CreateDays(ctx context.Context, days []domain.StudyPlanDay) error {
	for _, day := range days {
		copied := day
		copied.Tasks = nil
		f.days[day.PlanID] = append(f.days[day.PlanID], copied)
	}
	return nil
}

func (f *fakePlanStore) DaysFrom(ctx context.Context, planID uuid.UUID, date time.Time) ([]domain.StudyPlanDay, error) {
	var out []domain.StudyPlanDay
	for _, day := range f.days[planID] {
		if !day.Date.Before(date) {
			out = append(out, day)
		}
	}
	return out, nil
}

func (f *fakePlanStore) CreateTasks(ctx context.Context, tasks []domain.StudyPlanTask) error {
	for _, task := range tasks {
		f.tasks[task.DayID] = append(f.tasks[task.DayID], task)
	}
	return nil
}

func (f *fakePlanStore) TasksForDay(ctx context.Context, dayID uuid.UUID) ([]domain.StudyPlanTask, error) {
	return append([]domain.StudyPlanTask(nil), f.tasks[dayID]...), nil
}

func (f *fakePlanStore) DeleteTasks(ctx context.Context, taskIDs []uuid.UUID) error {
	doomed := make(map[uuid.UUID]bool, len(taskIDs))
	for _, id := range taskIDs {
		doomed[id] = true
	}
	for dayID, tasks := range f.tasks {
		var kept []domain.StudyPlanTask
		for _, t := range tasks {
			if !doomed[t.ID] {
				kept = append(kept, t)
			}
		}
		f.tasks[dayID] = kept
	}
	return nil
}

func (f *fakePlanStore) WithTx(tx *sql.Tx) store.PlanStore {
	return f
}

// fakeStatsStore only serves CountDue in this package's tests.
type fakeStatsStore struct {
	dueCount int
	countErr error
}

func (f *fakeStatsStore) Create(ctx context.Context, stats *domain.ReviewStats) error { return nil }

func (f *fakeStatsStore) Get(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error) {
	return nil, store.ErrReviewStatsNotFound
}

func (f *fakeStatsStore) GetForUpdate(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error) {
	return nil, store.ErrReviewStatsNotFound
}

func (f *fakeStatsStore) Update(ctx context.Context, stats *domain.ReviewStats) error { return nil }

func (f *fakeStatsStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return f.dueCount, f.countErr
}

func (f *fakeStatsStore) ActivityTimes(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeStatsStore) RecordActivity(ctx context.Context, userID uuid.UUID, reviewedAt time.Time) error {
	return nil
}

func (f *fakeStatsStore) WithTx(tx *sql.Tx) store.ReviewStatsStore { return f }

// fakeProgressStore returns a fixed completed-ordinal set.
type fakeProgressStore struct {
	completed map[int]bool
	err       error
}

func (f *fakeProgressStore) CompletedOrdinals(ctx context.Context, userID, certificationID uuid.UUID) (map[int]bool, error) {
	return f.completed, f.err
}

// fakeReadinessStore returns fixed readiness scores.
type fakeReadinessStore struct {
	scores []domain.DomainReadiness
	err    error
}

func (f *fakeReadinessStore) DomainScores(ctx context.Context, userID, certificationID uuid.UUID) ([]domain.DomainReadiness, error) {
	return f.scores, f.err
}
