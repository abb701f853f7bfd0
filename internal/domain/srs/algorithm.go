package srs

import (
	"math"
	"time"

	"github.com/jwhitaker/certprep-api/internal/domain"
)

// nextEaseFactor applies the SM-2 ease adjustment for a rating at the given
// quality level:
//
//	EF' = EF + (0.1 − (5−q) × (0.08 + (5−q) × 0.02))
//
// The result is clamped to params.MinEaseFactor and rounded to two decimal
// places. The adjustment applies on every rating, failures included.
func nextEaseFactor(currentEF float64, level int, params *Params) float64 {
	diff := float64(5 - level)
	newEF := currentEF + (0.1 - diff*(0.08+diff*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return math.Round(newEF*100) / 100
}

// nextInterval determines the interval in days after a successful recall.
// The first two successes use fixed intervals; from the third on, the
// previous interval grows by the question's ease factor as it stood before
// this rating was applied.
func nextInterval(currentInterval, newRepetitions int, easeFactor float64, params *Params) int {
	switch newRepetitions {
	case 1:
		return params.FirstInterval
	case 2:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// nextStats creates a new ReviewStats with updated values for the given
// rating. The original stats are never modified.
//
// Failure (again) resets repetitions to zero and schedules the question for
// tomorrow. Success increments repetitions and grows the interval. In both
// cases the ease factor is adjusted by nextEaseFactor and the next review is
// scheduled interval calendar days from now, keeping now's time of day.
func nextStats(
	stats *domain.ReviewStats,
	quality domain.ReviewQuality,
	now time.Time,
	params *Params,
) *domain.ReviewStats {
	newStats := &domain.ReviewStats{
		UserID:         stats.UserID,
		QuestionID:     stats.QuestionID,
		EaseFactor:     stats.EaseFactor,
		Interval:       stats.Interval,
		Repetitions:    stats.Repetitions,
		LastReviewedAt: now,
		CreatedAt:      stats.CreatedAt,
		UpdatedAt:      now,
	}

	newStats.EaseFactor = nextEaseFactor(stats.EaseFactor, quality.Level(), params)

	if quality == domain.ReviewQualityAgain {
		newStats.Repetitions = 0
		newStats.Interval = params.FirstInterval
	} else {
		newStats.Repetitions = stats.Repetitions + 1
		// The interval multiplication uses the ease factor from before this
		// rating; the adjusted ease takes effect on the following review.
		newStats.Interval = nextInterval(
			stats.Interval,
			newStats.Repetitions,
			stats.EaseFactor,
			params,
		)
	}

	newStats.NextReviewAt = now.AddDate(0, 0, newStats.Interval)

	return newStats
}
