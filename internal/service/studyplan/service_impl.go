package studyplan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/domain/planner"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// Verify interface compliance at compile time
var _ StudyPlanService = (*studyPlanServiceImpl)(nil)

// studyPlanServiceImpl implements the StudyPlanService interface.
type studyPlanServiceImpl struct {
	db             *sql.DB
	planStore      store.PlanStore
	statsStore     store.ReviewStatsStore
	progressStore  store.ProgressStore
	readinessStore store.ReadinessStore
	catalog        Catalog
	plannerCfg     planner.Config
	logger         *slog.Logger
}

// NewStudyPlanService creates a new StudyPlanService implementation.
func NewStudyPlanService(
	db *sql.DB,
	planStore store.PlanStore,
	statsStore store.ReviewStatsStore,
	progressStore store.ProgressStore,
	readinessStore store.ReadinessStore,
	catalog Catalog,
	plannerCfg planner.Config,
	logger *slog.Logger,
) StudyPlanService {
	if db == nil {
		panic("db cannot be nil")
	}
	if planStore == nil {
		panic("planStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if readinessStore == nil {
		panic("readinessStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &studyPlanServiceImpl{
		db:             db,
		planStore:      planStore,
		statsStore:     statsStore,
		progressStore:  progressStore,
		readinessStore: readinessStore,
		catalog:        catalog,
		plannerCfg:     plannerCfg,
		logger:         logger.With(slog.String("component", "study_plan_service")),
	}
}

// startOfDay truncates a time to midnight UTC on its calendar date.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Generate implements StudyPlanService.Generate.
func (s *studyPlanServiceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
	certificationID uuid.UUID,
	targetExamDate time.Time,
) (*domain.StudyPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	today := startOfDay(now)
	examDay := startOfDay(targetExamDate)

	if !examDay.After(today) {
		log.Warn("rejected plan with non-future exam date",
			slog.String("user_id", userID.String()),
			slog.Time("target_exam_date", targetExamDate))
		return nil, ErrExamDateNotFuture
	}

	totalDays := int(examDay.Sub(today).Hours()/24) + 1
	if totalDays > MaxPlanDays {
		log.Warn("rejected plan with excessive horizon",
			slog.String("user_id", userID.String()),
			slog.Int("total_days", totalDays))
		return nil, ErrExamDateTooFar
	}

	pctx, err := s.planningContext(ctx, userID, certificationID, now)
	if err != nil {
		return nil, err
	}

	plan, err := domain.NewStudyPlan(userID, certificationID, examDay)
	if err != nil {
		return nil, err
	}

	bounds := planner.PhaseBounds(totalDays, s.plannerCfg)

	days := make([]domain.StudyPlanDay, 0, totalDays)
	var allTasks []domain.StudyPlanTask
	for i := 0; i < totalDays; i++ {
		day := domain.NewStudyPlanDay(plan.ID, today.AddDate(0, 0, i))

		phase := bounds.PhaseFor(i)
		candidates := planner.BuildDay(pctx, phase, i, s.plannerCfg.BudgetFor(phase))
		tasks := materializeTasks(candidates, day.ID, 0, now)

		day.Tasks = tasks
		days = append(days, day)
		allTasks = append(allTasks, tasks...)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		planStore := s.planStore.WithTx(tx)

		if _, err := planStore.AbandonActive(ctx, userID, certificationID); err != nil {
			return fmt.Errorf("failed to abandon previous plan: %w", err)
		}
		if err := planStore.Create(ctx, plan); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}
		if err := planStore.CreateDays(ctx, days); err != nil {
			return fmt.Errorf("failed to create plan days: %w", err)
		}
		if err := planStore.CreateTasks(ctx, allTasks); err != nil {
			return fmt.Errorf("failed to create plan tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to generate study plan",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("certification_id", certificationID.String()))
		return nil, &ServiceError{Operation: "generate", Message: "failed to generate study plan", Err: err}
	}

	plan.Days = days

	log.Info("study plan generated",
		slog.String("plan_id", plan.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("total_days", totalDays),
		slog.Int("total_tasks", len(allTasks)))

	return plan, nil
}

// Regenerate implements StudyPlanService.Regenerate.
func (s *studyPlanServiceImpl) Regenerate(
	ctx context.Context,
	userID uuid.UUID,
	planID uuid.UUID,
	keepCompletedTasks bool,
) (*RegenerateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	plan, err := s.planStore.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, store.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, &ServiceError{Operation: "regenerate", Message: "failed to load plan", Err: err}
	}

	// A plan belonging to another user is indistinguishable from a missing
	// one.
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}

	if plan.Status != domain.PlanStatusActive {
		log.Warn("regenerate on inactive plan",
			slog.String("plan_id", planID.String()),
			slog.String("status", string(plan.Status)))
		return nil, ErrPlanNotActive
	}

	now := time.Now().UTC()
	today := startOfDay(now)

	pctx, err := s.planningContext(ctx, userID, plan.CertificationID, now)
	if err != nil {
		return nil, err
	}

	remaining, err := s.planStore.DaysFrom(ctx, planID, today)
	if err != nil {
		return nil, &ServiceError{Operation: "regenerate", Message: "failed to load remaining days", Err: err}
	}

	bounds := planner.PhaseBounds(len(remaining), s.plannerCfg)

	var tasksRemoved, tasksGenerated int
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		planStore := s.planStore.WithTx(tx)

		for i, day := range remaining {
			existing, err := planStore.TasksForDay(ctx, day.ID)
			if err != nil {
				return fmt.Errorf("failed to load tasks for day: %w", err)
			}

			phase := bounds.PhaseFor(i)
			budget := s.plannerCfg.BudgetFor(phase)

			var toDelete []uuid.UUID
			nextPos := 0
			for _, task := range existing {
				if keepCompletedTasks && task.IsCompleted() {
					budget -= task.EstimatedMinutes
					if task.Position >= nextPos {
						nextPos = task.Position + 1
					}
					continue
				}
				toDelete = append(toDelete, task.ID)
			}
			if budget < 0 {
				budget = 0
			}

			candidates := planner.BuildDay(pctx, phase, i, budget)
			fresh := materializeTasks(candidates, day.ID, nextPos, now)

			if err := planStore.DeleteTasks(ctx, toDelete); err != nil {
				return fmt.Errorf("failed to delete tasks: %w", err)
			}
			if err := planStore.CreateTasks(ctx, fresh); err != nil {
				return fmt.Errorf("failed to create tasks: %w", err)
			}

			tasksRemoved += len(toDelete)
			tasksGenerated += len(fresh)
		}

		if err := planStore.Touch(ctx, planID, now); err != nil {
			return fmt.Errorf("failed to update plan timestamp: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to regenerate study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()))
		return nil, &ServiceError{Operation: "regenerate", Message: "failed to regenerate study plan", Err: err}
	}

	updated, err := s.planStore.GetWithDays(ctx, planID)
	if err != nil {
		return nil, &ServiceError{Operation: "regenerate", Message: "failed to reload plan", Err: err}
	}

	log.Info("study plan regenerated",
		slog.String("plan_id", planID.String()),
		slog.Bool("keep_completed_tasks", keepCompletedTasks),
		slog.Int("tasks_removed", tasksRemoved),
		slog.Int("tasks_generated", tasksGenerated))

	return &RegenerateResult{
		Plan:           updated,
		TasksRemoved:   tasksRemoved,
		TasksGenerated: tasksGenerated,
	}, nil
}

// ActivePlan implements StudyPlanService.ActivePlan.
func (s *studyPlanServiceImpl) ActivePlan(
	ctx context.Context,
	userID uuid.UUID,
	certificationID uuid.UUID,
) (*domain.StudyPlan, error) {
	plan, err := s.planStore.GetActive(ctx, userID, certificationID)
	if err != nil {
		if errors.Is(err, store.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, &ServiceError{Operation: "active_plan", Message: "failed to load active plan", Err: err}
	}
	return plan, nil
}

// planningContext assembles the planner inputs: readiness scores, the
// incomplete tail of the learning path, and the review backlog size. A
// readiness failure aborts the whole operation; planning against stale or
// default scores would silently mistarget the weak-domain rotation.
func (s *studyPlanServiceImpl) planningContext(
	ctx context.Context,
	userID uuid.UUID,
	certificationID uuid.UUID,
	now time.Time,
) (*planner.Context, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	readiness, err := s.readinessStore.DomainScores(ctx, userID, certificationID)
	if err != nil {
		log.Error("failed to load readiness scores",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("certification_id", certificationID.String()))
		return nil, fmt.Errorf("%w: %v", ErrReadinessUnavailable, err)
	}

	completed, err := s.progressStore.CompletedOrdinals(ctx, userID, certificationID)
	if err != nil {
		return nil, &ServiceError{Operation: "planning_context", Message: "failed to load progress", Err: err}
	}

	due, err := s.statsStore.CountDue(ctx, userID, now)
	if err != nil {
		return nil, &ServiceError{Operation: "planning_context", Message: "failed to count due reviews", Err: err}
	}

	incomplete := incompleteItems(s.catalog.ItemsFor(certificationID), completed)

	return planner.NewContext(readiness, incomplete, due, s.plannerCfg), nil
}

// materializeTasks turns planner candidates into persistable tasks attached
// to a day, positioned from startPos.
func materializeTasks(
	candidates []planner.Task,
	dayID uuid.UUID,
	startPos int,
	now time.Time,
) []domain.StudyPlanTask {
	tasks := make([]domain.StudyPlanTask, 0, len(candidates))
	for i, c := range candidates {
		tasks = append(tasks, domain.StudyPlanTask{
			ID:               uuid.New(),
			DayID:            dayID,
			Position:         startPos + i,
			Type:             c.Type,
			TargetID:         c.TargetID,
			EstimatedMinutes: c.EstimatedMinutes,
			Notes:            c.Notes,
			CreatedAt:        now,
		})
	}
	return tasks
}
