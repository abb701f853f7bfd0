package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewQuality represents a user's self-assessed recall quality for a
// reviewed question.
type ReviewQuality string

// Possible review quality values
const (
	ReviewQualityAgain ReviewQuality = "again"
	ReviewQualityHard  ReviewQuality = "hard"
	ReviewQualityGood  ReviewQuality = "good"
	ReviewQualityEasy  ReviewQuality = "easy"
)

// Level returns the numeric quality level used by the scheduling formula.
// The scale is the classic 0-5 grade scale with levels 1-2 unused: a failed
// recall is 0 and the three passing grades map to 3, 4 and 5.
func (q ReviewQuality) Level() int {
	switch q {
	case ReviewQualityAgain:
		return 0
	case ReviewQualityHard:
		return 3
	case ReviewQualityGood:
		return 4
	case ReviewQualityEasy:
		return 5
	default:
		return -1
	}
}

// IsValid reports whether the quality is one of the four known ratings.
func (q ReviewQuality) IsValid() bool {
	switch q {
	case ReviewQualityAgain, ReviewQualityHard, ReviewQualityGood, ReviewQualityEasy:
		return true
	default:
		return false
	}
}

// Validation errors for ReviewStats
var (
	ErrEmptyStatsUserID     = errors.New("review stats user ID cannot be empty")
	ErrEmptyStatsQuestionID = errors.New("review stats question ID cannot be empty")
	ErrInvalidInterval      = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor    = errors.New("ease factor must be at least 1.3")
	ErrInvalidRepetitions   = errors.New("repetitions must be greater than or equal to 0")
)

// DefaultEaseFactor is the ease assigned to a question the first time a user
// rates it.
const DefaultEaseFactor = 2.5

// MinEaseFactor is the floor below which the ease factor never drops,
// regardless of how many times a question is failed.
const MinEaseFactor = 1.3

// ReviewStats tracks a user's memory-strength model for a single question.
// There is exactly one ReviewStats per (user, question) pair; it is created
// on the first rating, mutated on every subsequent rating and never deleted.
type ReviewStats struct {
	UserID         uuid.UUID `json:"user_id"`
	QuestionID     uuid.UUID `json:"question_id"`
	EaseFactor     float64   `json:"ease_factor"` // Never below MinEaseFactor
	Interval       int       `json:"interval"`    // Days until next review
	Repetitions    int       `json:"repetitions"` // Consecutive successful recalls
	NextReviewAt   time.Time `json:"next_review_at"`
	LastReviewedAt time.Time `json:"last_reviewed_at"` // Zero until first review
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewReviewStats creates fresh statistics for a (user, question) pair.
// New questions are due immediately.
func NewReviewStats(userID, questionID uuid.UUID) (*ReviewStats, error) {
	now := time.Now().UTC()
	stats := &ReviewStats{
		UserID:         userID,
		QuestionID:     questionID,
		EaseFactor:     DefaultEaseFactor,
		Interval:       0,
		Repetitions:    0,
		NextReviewAt:   now,
		LastReviewedAt: time.Time{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := stats.Validate(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Validate checks if the ReviewStats has valid data.
// Returns an error if any field fails validation.
func (s *ReviewStats) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStatsUserID
	}

	if s.QuestionID == uuid.Nil {
		return ErrEmptyStatsQuestionID
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}

	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	return nil
}
