package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// oneActivePlanConstraint is the partial unique index enforcing at most one
// active plan per (user, certification). See the migrations.
const oneActivePlanConstraint = "study_plans_one_active_idx"

// PlanStore implements the store.PlanStore interface using a PostgreSQL
// database as the storage backend.
type PlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPlanStore creates a new PostgreSQL implementation of the PlanStore
// interface. If logger is nil, a default logger is used.
func NewPlanStore(db store.DBTX, logger *slog.Logger) *PlanStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "plan_store")),
	}
}

// Ensure PlanStore implements store.PlanStore
var _ store.PlanStore = (*PlanStore)(nil)

// WithTx returns a PlanStore bound to the given transaction.
func (s *PlanStore) WithTx(tx *sql.Tx) store.PlanStore {
	return &PlanStore{db: tx, logger: s.logger}
}

// Create implements store.PlanStore.Create
func (s *PlanStore) Create(ctx context.Context, plan *domain.StudyPlan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := plan.Validate(); err != nil {
		log.Warn("study plan validation failed during create",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_plans
			(id, user_id, certification_id, target_exam_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		plan.ID,
		plan.UserID,
		plan.CertificationID,
		plan.TargetExamDate,
		plan.Status,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, oneActivePlanConstraint) {
			log.Warn("active plan already exists",
				slog.String("user_id", plan.UserID.String()),
				slog.String("certification_id", plan.CertificationID.String()))
			return store.ErrActivePlanExists
		}
		log.Error("failed to create study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return mapError(err)
	}

	log.Info("study plan created",
		slog.String("plan_id", plan.ID.String()),
		slog.String("user_id", plan.UserID.String()))
	return nil
}

const planColumns = `
	id, user_id, certification_id, target_exam_date, status, created_at, updated_at
`

// GetByID implements store.PlanStore.GetByID
func (s *PlanStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE id = $1`
	return s.scanPlan(ctx, s.db.QueryRowContext(ctx, query, id))
}

// GetActive implements store.PlanStore.GetActive
func (s *PlanStore) GetActive(ctx context.Context, userID, certificationID uuid.UUID) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + `
		FROM study_plans
		WHERE user_id = $1 AND certification_id = $2 AND status = $3
	`
	plan, err := s.scanPlan(ctx, s.db.QueryRowContext(ctx, query, userID, certificationID, domain.PlanStatusActive))
	if err != nil {
		return nil, err
	}
	if err := s.loadDays(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetWithDays implements store.PlanStore.GetWithDays
func (s *PlanStore) GetWithDays(ctx context.Context, id uuid.UUID) (*domain.StudyPlan, error) {
	plan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadDays(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanStore) scanPlan(ctx context.Context, row *sql.Row) (*domain.StudyPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var plan domain.StudyPlan
	var status string

	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.CertificationID,
		&plan.TargetExamDate,
		&status,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPlanNotFound
		}
		log.Error("failed to get study plan", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	plan.Status = domain.PlanStatus(status)
	return &plan, nil
}

// loadDays populates the plan's days and their tasks.
func (s *PlanStore) loadDays(ctx context.Context, plan *domain.StudyPlan) error {
	dayQuery := `
		SELECT id, plan_id, date, is_complete
		FROM study_plan_days
		WHERE plan_id = $1
		ORDER BY date
	`
	rows, err := s.db.QueryContext(ctx, dayQuery, plan.ID)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []domain.StudyPlanDay
	for rows.Next() {
		var day domain.StudyPlanDay
		if err := rows.Scan(&day.ID, &day.PlanID, &day.Date, &day.IsComplete); err != nil {
			return mapError(err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return mapError(err)
	}

	for i := range days {
		tasks, err := s.TasksForDay(ctx, days[i].ID)
		if err != nil {
			return err
		}
		days[i].Tasks = tasks
	}

	plan.Days = days
	return nil
}

// AbandonActive implements store.PlanStore.AbandonActive
func (s *PlanStore) AbandonActive(ctx context.Context, userID, certificationID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE study_plans
		SET status = $1, updated_at = $2
		WHERE user_id = $3 AND certification_id = $4 AND status = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		domain.PlanStatusAbandoned,
		time.Now().UTC(),
		userID,
		certificationID,
		domain.PlanStatusActive,
	)
	if err != nil {
		log.Error("failed to abandon active plan",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}

	if rowsAffected > 0 {
		log.Info("abandoned previous active plan",
			slog.String("user_id", userID.String()),
			slog.String("certification_id", certificationID.String()))
	}
	return int(rowsAffected), nil
}

// UpdateStatus implements store.PlanStore.UpdateStatus
func (s *PlanStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PlanStatus) error {
	if !status.IsValid() {
		return domain.ErrInvalidPlanStatus
	}

	query := `
		UPDATE study_plans
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrPlanNotFound
	}
	return nil
}

// Touch implements store.PlanStore.Touch
func (s *PlanStore) Touch(ctx context.Context, id uuid.UUID, now time.Time) error {
	result, err := s.db.ExecContext(
		ctx, `UPDATE study_plans SET updated_at = $1 WHERE id = $2`, now, id)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrPlanNotFound
	}
	return nil
}

// CreateDays implements store.PlanStore.CreateDays
func (s *PlanStore) CreateDays(ctx context.Context, days []domain.StudyPlanDay) error {
	if len(days) == 0 {
		return nil
	}

	query := `
		INSERT INTO study_plan_days (id, plan_id, date, is_complete)
		VALUES ($1, $2, $3, $4)
	`
	for _, day := range days {
		if _, err := s.db.ExecContext(ctx, query, day.ID, day.PlanID, day.Date, day.IsComplete); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// DaysFrom implements store.PlanStore.DaysFrom
func (s *PlanStore) DaysFrom(ctx context.Context, planID uuid.UUID, date time.Time) ([]domain.StudyPlanDay, error) {
	query := `
		SELECT id, plan_id, date, is_complete
		FROM study_plan_days
		WHERE plan_id = $1 AND date >= $2
		ORDER BY date
	`
	rows, err := s.db.QueryContext(ctx, query, planID, date)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []domain.StudyPlanDay
	for rows.Next() {
		var day domain.StudyPlanDay
		if err := rows.Scan(&day.ID, &day.PlanID, &day.Date, &day.IsComplete); err != nil {
			return nil, mapError(err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return days, nil
}

// CreateTasks implements store.PlanStore.CreateTasks
func (s *PlanStore) CreateTasks(ctx context.Context, tasks []domain.StudyPlanTask) error {
	if len(tasks) == 0 {
		return nil
	}

	query := `
		INSERT INTO study_plan_tasks
			(id, day_id, position, task_type, target_id, estimated_minutes, completed_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return err
		}
		_, err := s.db.ExecContext(
			ctx,
			query,
			task.ID,
			task.DayID,
			task.Position,
			task.Type,
			task.TargetID,
			task.EstimatedMinutes,
			task.CompletedAt,
			task.Notes,
			task.CreatedAt,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

// TasksForDay implements store.PlanStore.TasksForDay
func (s *PlanStore) TasksForDay(ctx context.Context, dayID uuid.UUID) ([]domain.StudyPlanTask, error) {
	query := `
		SELECT id, day_id, position, task_type, target_id, estimated_minutes, completed_at, notes, created_at
		FROM study_plan_tasks
		WHERE day_id = $1
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, dayID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.StudyPlanTask
	for rows.Next() {
		var task domain.StudyPlanTask
		var taskType string
		err := rows.Scan(
			&task.ID,
			&task.DayID,
			&task.Position,
			&taskType,
			&task.TargetID,
			&task.EstimatedMinutes,
			&task.CompletedAt,
			&task.Notes,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, mapError(err)
		}
		task.Type = domain.TaskType(taskType)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return tasks, nil
}

// DeleteTasks implements store.PlanStore.DeleteTasks
func (s *PlanStore) DeleteTasks(ctx context.Context, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}

	query := `DELETE FROM study_plan_tasks WHERE id = ANY($1)`
	if _, err := s.db.ExecContext(ctx, query, taskIDs); err != nil {
		return mapError(err)
	}
	return nil
}
