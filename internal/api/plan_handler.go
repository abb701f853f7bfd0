package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/api/shared"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/redact"
	"github.com/jwhitaker/certprep-api/internal/service/studyplan"
)

// PlanHandler handles study-plan HTTP requests
type PlanHandler struct {
	planService studyplan.StudyPlanService
	logger      *slog.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService studyplan.StudyPlanService, logger *slog.Logger) *PlanHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PlanHandler")
	}

	return &PlanHandler{
		planService: planService,
		logger:      logger.With(slog.String("component", "plan_handler")),
	}
}

// GeneratePlanRequest represents the request body for generating a plan
type GeneratePlanRequest struct {
	CertificationID string `json:"certificationId" validate:"required,uuid"`
	TargetExamDate  string `json:"targetExamDate"  validate:"required"` // YYYY-MM-DD
}

// GeneratePlan handles POST /plans requests.
// It builds a fresh study plan through the target exam date, abandoning any
// previous active plan for the same certification.
func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GeneratePlanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	certificationID, err := uuid.Parse(req.CertificationID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid certification ID format")
		return
	}

	examDate, err := time.Parse(dateLayout, req.TargetExamDate)
	if err != nil {
		log.Warn("invalid exam date format",
			slog.String("target_exam_date", req.TargetExamDate),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid target exam date, expected YYYY-MM-DD")
		return
	}

	plan, err := h.planService.Generate(r.Context(), userID, certificationID, examDate)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to generate study plan"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("study plan generated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", plan.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, planToResponse(plan))
}

// RegeneratePlanRequest represents the request body for regenerating a plan
type RegeneratePlanRequest struct {
	KeepCompletedTasks bool `json:"keepCompletedTasks"`
}

// RegeneratePlan handles POST /plans/{id}/regenerate requests.
// It rebuilds the remaining days of an active plan against current readiness
// and progress.
func (h *PlanHandler) RegeneratePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	planID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid plan ID format", slog.String("plan_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	// An empty body defaults to replacing every remaining task.
	var req RegeneratePlanRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			log.Warn("invalid request format",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", userID.String()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	result, err := h.planService.Regenerate(r.Context(), userID, planID, req.KeepCompletedTasks)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to regenerate study plan"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("study plan regenerated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", planID.String()),
		slog.Int("tasks_removed", result.TasksRemoved),
		slog.Int("tasks_generated", result.TasksGenerated))
	shared.RespondWithJSON(w, r, http.StatusOK, regenerateToResponse(result))
}

// GetActivePlan handles GET /plans/active?certification_id= requests.
func (h *PlanHandler) GetActivePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	rawCertID := r.URL.Query().Get("certification_id")
	if rawCertID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "certification_id query parameter is required")
		return
	}

	certificationID, err := uuid.Parse(rawCertID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid certification ID format")
		return
	}

	plan, err := h.planService.ActivePlan(r.Context(), userID, certificationID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load active study plan"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}
