package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/store"
)

// fakeStatsStore is an in-memory ReviewStatsStore for service tests. It
// ignores the transaction handle; atomicity is the transaction helper's
// concern, tested separately with sqlmock.
type fakeStatsStore struct {
	stats    map[string]*domain.ReviewStats
	activity []time.Time
	dueCount int

	getErr    error
	createErr error
	updateErr error
	countErr  error
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{stats: make(map[string]*domain.ReviewStats)}
}

func statsKey(userID, questionID uuid.UUID) string {
	return userID.String() + "/" + questionID.String()
}

func (f *fakeStatsStore) put(stats *domain.ReviewStats) {
	f.stats[statsKey(stats.UserID, stats.QuestionID)] = stats
}

func (f *fakeStatsStore) Create(ctx context.Context, stats *domain.ReviewStats) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := statsKey(stats.UserID, stats.QuestionID)
	if _, ok := f.stats[key]; ok {
		return store.ErrReviewStatsExists
	}
	f.stats[key] = stats
	return nil
}

func (f *fakeStatsStore) Get(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	stats, ok := f.stats[statsKey(userID, questionID)]
	if !ok {
		return nil, store.ErrReviewStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (f *fakeStatsStore) GetForUpdate(ctx context.Context, userID, questionID uuid.UUID) (*domain.ReviewStats, error) {
	return f.Get(ctx, userID, questionID)
}

func (f *fakeStatsStore) Update(ctx context.Context, stats *domain.ReviewStats) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	key := statsKey(stats.UserID, stats.QuestionID)
	if _, ok := f.stats[key]; !ok {
		return store.ErrReviewStatsNotFound
	}
	f.stats[key] = stats
	return nil
}

func (f *fakeStatsStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.dueCount, nil
}

func (f *fakeStatsStore) ActivityTimes(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.activity, nil
}

func (f *fakeStatsStore) RecordActivity(ctx context.Context, userID uuid.UUID, reviewedAt time.Time) error {
	f.activity = append(f.activity, reviewedAt)
	return nil
}

func (f *fakeStatsStore) WithTx(tx *sql.Tx) store.ReviewStatsStore {
	return f
}
