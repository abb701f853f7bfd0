package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jwhitaker/certprep-api/internal/service/auth"
	"github.com/jwhitaker/certprep-api/internal/service/review"
	"github.com/jwhitaker/certprep-api/internal/service/studyplan"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrPlanNotFound),
		errors.Is(err, store.ErrReviewStatsNotFound),
		errors.Is(err, studyplan.ErrPlanNotFound),
		errors.Is(err, review.ErrStatsNotFound):
		return http.StatusNotFound

	// Conflict errors: writes against a plan in the wrong state
	case errors.Is(err, studyplan.ErrPlanNotActive),
		errors.Is(err, store.ErrActivePlanExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidPostpone),
		errors.Is(err, studyplan.ErrExamDateNotFuture),
		errors.Is(err, studyplan.ErrExamDateTooFar):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, studyplan.ErrPlanNotFound),
		errors.Is(err, store.ErrPlanNotFound):
		return "Study plan not found"

	case errors.Is(err, review.ErrStatsNotFound),
		errors.Is(err, store.ErrReviewStatsNotFound):
		return "Review statistics not found"

	case errors.Is(err, studyplan.ErrPlanNotActive):
		return "Study plan is not active"

	case errors.Is(err, store.ErrActivePlanExists):
		return "An active study plan already exists"

	case errors.Is(err, review.ErrInvalidRating):
		return "Invalid review rating"

	case errors.Is(err, review.ErrInvalidPostpone):
		return "Postpone days must be at least 1"

	case errors.Is(err, studyplan.ErrExamDateNotFuture):
		return "Target exam date must be in the future"

	case errors.Is(err, studyplan.ErrExamDateTooFar):
		return "Target exam date is too far in the future"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GeneratePlanRequest.TargetExamDate'
	// Error:Field validation for 'TargetExamDate' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
