package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidReviewQuality is returned when a review quality rating is not valid.
	ErrInvalidReviewQuality = errors.New("invalid review quality")

	// ErrInvalidPlanStatus is returned when a study plan status is not valid.
	ErrInvalidPlanStatus = errors.New("invalid study plan status")

	// ErrInvalidTaskType is returned when a study plan task type is not valid.
	ErrInvalidTaskType = errors.New("invalid study plan task type")

	// ErrInvalidReadinessScore is returned when a domain readiness score is
	// outside the 0-100 range.
	ErrInvalidReadinessScore = errors.New("readiness score must be between 0 and 100")
)
