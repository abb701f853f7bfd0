package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrPlanNotFound indicates that the requested study plan does not exist.
	ErrPlanNotFound = fmt.Errorf("%w: study plan", ErrNotFound)

	// ErrDayNotFound indicates that the requested study plan day does not exist.
	ErrDayNotFound = fmt.Errorf("%w: study plan day", ErrNotFound)

	// ErrReviewStatsNotFound indicates that the requested review stats do not
	// exist for the (user, question) pair.
	ErrReviewStatsNotFound = fmt.Errorf("%w: review stats", ErrNotFound)

	// ErrReviewStatsExists indicates stats already exist for the
	// (user, question) pair, which is unique.
	ErrReviewStatsExists = fmt.Errorf("%w: review stats", ErrDuplicate)

	// ErrActivePlanExists indicates that inserting an active plan would
	// violate the one-active-plan-per-(user, certification) constraint.
	ErrActivePlanExists = fmt.Errorf("%w: active study plan", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
