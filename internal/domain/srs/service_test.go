package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

func TestServiceCalculateNextReview(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	t.Run("nil stats rejected", func(t *testing.T) {
		_, err := svc.CalculateNextReview(nil, domain.ReviewQualityGood, now)
		if !errors.Is(err, ErrNilStats) {
			t.Errorf("expected ErrNilStats, got %v", err)
		}
	})

	t.Run("unknown quality rejected", func(t *testing.T) {
		stats, _ := domain.NewReviewStats(uuid.New(), uuid.New())
		_, err := svc.CalculateNextReview(stats, domain.ReviewQuality("meh"), now)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("expected ErrInvalidQuality, got %v", err)
		}
	})

	t.Run("valid rating produces new stats", func(t *testing.T) {
		stats, _ := domain.NewReviewStats(uuid.New(), uuid.New())
		updated, err := svc.CalculateNextReview(stats, domain.ReviewQualityGood, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == stats {
			t.Error("expected a new stats instance")
		}
		if updated.Repetitions != 1 || updated.Interval != 1 {
			t.Errorf("got repetitions=%d interval=%d, want 1/1", updated.Repetitions, updated.Interval)
		}
	})
}

func TestServicePostponeReview(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	stats, _ := domain.NewReviewStats(uuid.New(), uuid.New())

	t.Run("zero days rejected", func(t *testing.T) {
		_, err := svc.PostponeReview(stats, 0, now)
		if !errors.Is(err, ErrInvalidDays) {
			t.Errorf("expected ErrInvalidDays, got %v", err)
		}
	})

	t.Run("postpone shifts next review only", func(t *testing.T) {
		updated, err := svc.PostponeReview(stats, 3, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := stats.NextReviewAt.AddDate(0, 0, 3); !updated.NextReviewAt.Equal(want) {
			t.Errorf("next review at = %v, want %v", updated.NextReviewAt, want)
		}
		if updated.EaseFactor != stats.EaseFactor || updated.Repetitions != stats.Repetitions {
			t.Error("postpone must not touch the memory model")
		}
	})
}

func TestServiceRecommendedReviews(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	// Default budget is 30 minutes at 30 seconds per card.
	if got := svc.RecommendedReviews(10); got != 10 {
		t.Errorf("RecommendedReviews(10) = %d, want 10", got)
	}
	if got := svc.RecommendedReviews(100); got != 50 {
		t.Errorf("RecommendedReviews(100) = %d, want 50", got)
	}
}
