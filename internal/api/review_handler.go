package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/api/shared"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/platform/logger"
	"github.com/jwhitaker/certprep-api/internal/redact"
	"github.com/jwhitaker/certprep-api/internal/service/review"
)

// ReviewHandler handles review-scheduling HTTP requests
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReviewRequest represents the request body for rating a question
type SubmitReviewRequest struct {
	Quality string `json:"quality" validate:"required,oneof=again hard good easy"`
}

// SubmitReview handles POST /reviews/{question_id} requests.
// It records the rating and reschedules the question.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, questionID, ok := h.requestIdentity(w, r)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("question_id", questionID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	stats, err := h.reviewService.SubmitReview(
		r.Context(),
		userID,
		questionID,
		review.ReviewRating{Quality: domain.ReviewQuality(req.Quality)},
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("question_id", questionID.String()),
		slog.String("quality", req.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}

// PostponeReviewRequest represents the request body for postponing a question
type PostponeReviewRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// PostponeReview handles POST /reviews/{question_id}/postpone requests.
func (h *ReviewHandler) PostponeReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, questionID, ok := h.requestIdentity(w, r)
	if !ok {
		return
	}

	var req PostponeReviewRequest
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

	stats, err := h.reviewService.PostponeReview(r.Context(), userID, questionID, req.Days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to postpone review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review postponed",
		slog.String("user_id", userID.String()),
		slog.String("question_id", questionID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}

// DailyLoad handles GET /reviews/load requests.
// It reports how many questions are due and how many to review today.
func (h *ReviewHandler) DailyLoad(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	session, err := h.reviewService.DailySession(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to estimate review load", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, loadToResponse(session))
}

// Streak handles GET /streak requests.
func (h *ReviewHandler) Streak(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	length, err := h.reviewService.Streak(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to calculate streak", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StreakResponse{Streak: length})
}

// requestIdentity extracts the authenticated user and the question ID from
// the request, writing the error response itself when either is missing.
func (h *ReviewHandler) requestIdentity(
	w http.ResponseWriter,
	r *http.Request,
) (userID, questionID uuid.UUID, ok bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "question_id")
	if pathID == "" {
		log.Warn("question ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Question ID is required")
		return uuid.Nil, uuid.Nil, false
	}

	questionID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid question ID format", slog.String("question_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question ID format")
		return uuid.Nil, uuid.Nil, false
	}

	userID, found := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !found || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, questionID, true
}
