package studyplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/domain/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	svc       StudyPlanService
	mock      sqlmock.Sqlmock
	planStore *fakePlanStore
	stats     *fakeStatsStore
	progress  *fakeProgressStore
	readiness *fakeReadinessStore

	userID uuid.UUID
	certID uuid.UUID
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &testFixture{
		mock:      mock,
		planStore: newFakePlanStore(),
		stats:     &fakeStatsStore{dueCount: 12},
		progress:  &fakeProgressStore{completed: map[int]bool{1: true}},
		userID:    uuid.New(),
		certID:    uuid.New(),
	}

	f.readiness = &fakeReadinessStore{scores: []domain.DomainReadiness{
		{DomainID: uuid.New(), DomainName: "Security", Score: 80},
		{DomainID: uuid.New(), DomainName: "Networking", Score: 40},
		{DomainID: uuid.New(), DomainName: "Storage", Score: 60},
		{DomainID: uuid.New(), DomainName: "Databases", Score: 20},
	}}

	catalog := Catalog{
		f.certID: {
			{Order: 1, Title: "Foundations"},
			{Order: 2, Title: "Core services"},
			{Order: 3, Title: "Operations"},
			{Order: 4, Title: "Architecture"},
		},
	}

	f.svc = NewStudyPlanService(
		db, f.planStore, f.stats, f.progress, f.readiness,
		catalog, planner.DefaultConfig(), nil)
	return f
}

func (f *testFixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

// examDateInDays returns a date that yields the given plan length, since
// plans span today through the exam date inclusive.
func examDateInDays(totalDays int) time.Time {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, totalDays-1)
}

func TestGenerate_BuildsFullPlan(t *testing.T) {
	f := newFixture(t)
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, domain.PlanStatusActive, plan.Status)
	require.Len(t, plan.Days, 10)

	// Consecutive dates from today.
	for i := 1; i < len(plan.Days); i++ {
		assert.Equal(t, plan.Days[i-1].Date.AddDate(0, 0, 1), plan.Days[i].Date)
	}

	// 10 days split 4 early / 3 middle / 3 late. The first early day is all
	// learning: the 45-minute item consumes the whole early budget.
	day0 := plan.Days[0]
	require.NotEmpty(t, day0.Tasks)
	assert.Equal(t, domain.TaskTypeLearning, day0.Tasks[0].Type)
	require.NotNil(t, day0.Tasks[0].TargetID)
	// Ordinal 1 is already completed, so the path starts at 2.
	assert.Equal(t, "2", *day0.Tasks[0].TargetID)

	// Late days carry drills.
	var lateDrills int
	for _, day := range plan.Days[7:] {
		for _, task := range day.Tasks {
			if task.Type == domain.TaskTypeDrill {
				lateDrills++
			}
		}
	}
	assert.Greater(t, lateDrills, 0)

	// Task positions are dense within each day.
	for _, day := range plan.Days {
		for i, task := range day.Tasks {
			assert.Equal(t, i, task.Position)
			assert.Greater(t, task.EstimatedMinutes, 0)
			assert.NotEmpty(t, task.Notes)
		}
	}

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGenerate_SchedulesEachItemOnce(t *testing.T) {
	f := newFixture(t)
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(20))
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, day := range plan.Days {
		for _, task := range day.Tasks {
			if task.Type == domain.TaskTypeLearning {
				seen[*task.TargetID]++
			}
		}
	}
	for target, count := range seen {
		assert.Equal(t, 1, count, "item %s scheduled more than once", target)
	}
}

func TestGenerate_AbandonsPreviousActivePlan(t *testing.T) {
	f := newFixture(t)
	f.expectTx()
	f.expectTx()

	first, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	second, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(15))
	require.NoError(t, err)

	old, err := f.planStore.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStatusAbandoned, old.Status)

	current, err := f.planStore.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStatusActive, current.Status)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGenerate_RejectsNonFutureExamDate(t *testing.T) {
	f := newFixture(t)

	for _, examDate := range []time.Time{
		time.Now().UTC(),                   // today
		time.Now().UTC().AddDate(0, 0, -1), // yesterday
	} {
		plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDate)
		assert.Nil(t, plan)
		assert.ErrorIs(t, err, ErrExamDateNotFuture)
	}

	assert.Empty(t, f.planStore.plans)
}

func TestGenerate_RejectsExcessiveHorizon(t *testing.T) {
	f := newFixture(t)

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(MaxPlanDays+1))
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrExamDateTooFar)
	assert.Empty(t, f.planStore.plans)
}

func TestGenerate_AtMaxHorizon(t *testing.T) {
	f := newFixture(t)
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(MaxPlanDays))
	require.NoError(t, err)
	assert.Len(t, plan.Days, MaxPlanDays)
}

func TestGenerate_ReadinessFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.readiness.err = errors.New("scorer offline")

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrReadinessUnavailable)
	assert.Empty(t, f.planStore.plans)
}

func TestRegenerate_PlanNotFound(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Regenerate(context.Background(), f.userID, uuid.New(), true)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestRegenerate_OtherUsersPlan(t *testing.T) {
	f := newFixture(t)
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	result, err := f.svc.Regenerate(context.Background(), uuid.New(), plan.ID, true)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestRegenerate_InactivePlanWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	require.NoError(t, f.planStore.UpdateStatus(context.Background(), plan.ID, domain.PlanStatusCompleted))
	before, err := f.planStore.GetWithDays(context.Background(), plan.ID)
	require.NoError(t, err)

	result, err := f.svc.Regenerate(context.Background(), f.userID, plan.ID, true)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPlanNotActive)

	after, err := f.planStore.GetWithDays(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegenerate_KeepsCompletedTasks(t *testing.T) {
	f := newFixture(t)
	f.expectTx()
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	// Complete the first task of the first day.
	firstDay := plan.Days[0]
	require.NotEmpty(t, firstDay.Tasks)
	doneID := firstDay.Tasks[0].ID
	completedAt := time.Now().UTC()
	f.planStore.tasks[firstDay.ID][0].CompletedAt = &completedAt

	result, err := f.svc.Regenerate(context.Background(), f.userID, plan.ID, true)
	require.NoError(t, err)

	// The completed task survives regeneration.
	var found bool
	for _, day := range result.Plan.Days {
		for _, task := range day.Tasks {
			if task.ID == doneID {
				found = true
				assert.True(t, task.IsCompleted())
			}
		}
	}
	assert.True(t, found, "completed task was removed")

	assert.Greater(t, result.TasksGenerated, 0)
	assert.Greater(t, result.TasksRemoved, 0)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRegenerate_DropAllReplacesCompletedTasks(t *testing.T) {
	f := newFixture(t)
	f.expectTx()
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	firstDay := plan.Days[0]
	require.NotEmpty(t, firstDay.Tasks)
	doneID := firstDay.Tasks[0].ID
	completedAt := time.Now().UTC()
	f.planStore.tasks[firstDay.ID][0].CompletedAt = &completedAt

	result, err := f.svc.Regenerate(context.Background(), f.userID, plan.ID, false)
	require.NoError(t, err)

	for _, day := range result.Plan.Days {
		for _, task := range day.Tasks {
			assert.NotEqual(t, doneID, task.ID)
			assert.False(t, task.IsCompleted())
		}
	}
}

func TestRegenerate_CompletedTaskConsumesBudget(t *testing.T) {
	f := newFixture(t)
	f.expectTx()
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	// The first early day holds a single 45-minute learning task that fills
	// the whole early budget. Completing it leaves no residual, so the
	// regenerated day gains nothing new.
	firstDay := plan.Days[0]
	require.Len(t, firstDay.Tasks, 1)
	require.Equal(t, 45, firstDay.Tasks[0].EstimatedMinutes)
	completedAt := time.Now().UTC()
	f.planStore.tasks[firstDay.ID][0].CompletedAt = &completedAt

	result, err := f.svc.Regenerate(context.Background(), f.userID, plan.ID, true)
	require.NoError(t, err)

	require.NotEmpty(t, result.Plan.Days)
	regenerated := result.Plan.Days[0]
	require.Len(t, regenerated.Tasks, 1)
	assert.Equal(t, firstDay.Tasks[0].ID, regenerated.Tasks[0].ID)
}

func TestRegenerate_BumpsUpdatedAt(t *testing.T) {
	f := newFixture(t)
	f.expectTx()
	f.expectTx()

	plan, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	// Force a visibly stale timestamp.
	f.planStore.plans[plan.ID].UpdatedAt = time.Now().UTC().Add(-time.Hour)

	result, err := f.svc.Regenerate(context.Background(), f.userID, plan.ID, true)
	require.NoError(t, err)

	assert.True(t, result.Plan.UpdatedAt.After(time.Now().UTC().Add(-time.Minute)))
}

func TestActivePlan(t *testing.T) {
	f := newFixture(t)
	f.expectTx()

	generated, err := f.svc.Generate(context.Background(), f.userID, f.certID, examDateInDays(10))
	require.NoError(t, err)

	plan, err := f.svc.ActivePlan(context.Background(), f.userID, f.certID)
	require.NoError(t, err)
	assert.Equal(t, generated.ID, plan.ID)
	assert.Len(t, plan.Days, 10)
}

func TestActivePlan_NoneExists(t *testing.T) {
	f := newFixture(t)

	plan, err := f.svc.ActivePlan(context.Background(), f.userID, f.certID)

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
