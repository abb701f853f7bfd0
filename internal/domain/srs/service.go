package srs

import (
	"errors"
	"time"

	"github.com/jwhitaker/certprep-api/internal/domain"
)

// Common errors
var (
	ErrNilStats       = errors.New("review stats cannot be nil")
	ErrInvalidQuality = errors.New("invalid review quality")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
)

// Service defines the interface for scheduling algorithm operations.
type Service interface {
	// CalculateNextReview computes new stats based on a quality rating.
	CalculateNextReview(
		stats *domain.ReviewStats,
		quality domain.ReviewQuality,
		now time.Time,
	) (*domain.ReviewStats, error)

	// PostponeReview pushes the next review time forward by a number of days
	// without touching the memory model.
	PostponeReview(
		stats *domain.ReviewStats,
		days int,
		now time.Time,
	) (*domain.ReviewStats, error)

	// RecommendedReviews returns how many of totalDue cards should be
	// reviewed today under the configured time budget.
	RecommendedReviews(totalDue int) int
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// CalculateNextReview implements Service.
func (s *defaultService) CalculateNextReview(
	stats *domain.ReviewStats,
	quality domain.ReviewQuality,
	now time.Time,
) (*domain.ReviewStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	if !quality.IsValid() {
		return nil, ErrInvalidQuality
	}

	return nextStats(stats, quality, now, s.params), nil
}

// PostponeReview implements Service.
func (s *defaultService) PostponeReview(
	stats *domain.ReviewStats,
	days int,
	now time.Time,
) (*domain.ReviewStats, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	newStats := *stats
	newStats.NextReviewAt = stats.NextReviewAt.AddDate(0, 0, days)
	newStats.UpdatedAt = now

	return &newStats, nil
}

// RecommendedReviews implements Service.
func (s *defaultService) RecommendedReviews(totalDue int) int {
	return DailyReviewCount(totalDue, s.params.TargetReviewMinutes, s.params.SecondsPerCard)
}
