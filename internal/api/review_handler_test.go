package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/api/shared"
	"github.com/jwhitaker/certprep-api/internal/domain"
	"github.com/jwhitaker/certprep-api/internal/service/review"
)

// mockReviewService is a mock implementation of the ReviewService interface
type mockReviewService struct {
	submitFn   func(ctx context.Context, userID, questionID uuid.UUID, rating review.ReviewRating) (*domain.ReviewStats, error)
	postponeFn func(ctx context.Context, userID, questionID uuid.UUID, days int) (*domain.ReviewStats, error)
	sessionFn  func(ctx context.Context, userID uuid.UUID) (*review.DailySession, error)
	streakFn   func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *mockReviewService) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	questionID uuid.UUID,
	rating review.ReviewRating,
) (*domain.ReviewStats, error) {
	return m.submitFn(ctx, userID, questionID, rating)
}

func (m *mockReviewService) PostponeReview(
	ctx context.Context,
	userID uuid.UUID,
	questionID uuid.UUID,
	days int,
) (*domain.ReviewStats, error) {
	return m.postponeFn(ctx, userID, questionID, days)
}

func (m *mockReviewService) DailySession(ctx context.Context, userID uuid.UUID) (*review.DailySession, error) {
	return m.sessionFn(ctx, userID)
}

func (m *mockReviewService) Streak(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.streakFn(ctx, userID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newAuthedRequest builds a request carrying a user ID and, optionally, a
// chi URL parameter.
func newAuthedRequest(method, target string, body []byte, userID uuid.UUID, params map[string]string) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := req.Context()
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestSubmitReview(t *testing.T) {
	userID := uuid.New()
	questionID := uuid.New()

	sampleStats := &domain.ReviewStats{
		UserID:         userID,
		QuestionID:     questionID,
		EaseFactor:     2.5,
		Interval:       1,
		Repetitions:    1,
		NextReviewAt:   time.Now().UTC().AddDate(0, 0, 1),
		LastReviewedAt: time.Now().UTC(),
	}

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		body           string
		serviceResult  *domain.ReviewStats
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			userIDInCtx:    userID,
			body:           `{"quality":"good"}`,
			serviceResult:  sampleStats,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid Quality",
			userIDInCtx:    userID,
			body:           `{"quality":"brilliant"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Quality",
			userIDInCtx:    userID,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed Body",
			userIDInCtx:    userID,
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing User ID",
			userIDInCtx:    uuid.Nil,
			body:           `{"quality":"good"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Service Error",
			userIDInCtx:    userID,
			body:           `{"quality":"good"}`,
			serviceError:   errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				submitFn: func(ctx context.Context, uid, qid uuid.UUID, rating review.ReviewRating) (*domain.ReviewStats, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewReviewHandler(mockService, testLogger())

			req := newAuthedRequest(
				"POST", "/api/reviews/"+questionID.String(),
				[]byte(tc.body), tc.userIDInCtx,
				map[string]string{"question_id": questionID.String()})
			rr := httptest.NewRecorder()

			handler.SubmitReview(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus == http.StatusOK {
				var response ReviewStatsResponse
				if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode response body: %v", err)
				}
				if response.QuestionID != questionID.String() {
					t.Errorf("wrong question ID: got %v want %v", response.QuestionID, questionID)
				}
				if response.EaseFactor != 2.5 {
					t.Errorf("wrong ease factor: got %v want 2.5", response.EaseFactor)
				}
				if response.LastReviewed == nil {
					t.Error("expected lastReviewedAt to be set")
				}
			}
		})
	}
}

func TestSubmitReview_InvalidQuestionID(t *testing.T) {
	handler := NewReviewHandler(&mockReviewService{}, testLogger())

	req := newAuthedRequest(
		"POST", "/api/reviews/not-a-uuid",
		[]byte(`{"quality":"good"}`), uuid.New(),
		map[string]string{"question_id": "not-a-uuid"})
	rr := httptest.NewRecorder()

	handler.SubmitReview(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}

func TestPostponeReview(t *testing.T) {
	userID := uuid.New()
	questionID := uuid.New()

	tests := []struct {
		name           string
		body           string
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"days":3}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Zero Days",
			body:           `{"days":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unseen Question",
			body:           `{"days":3}`,
			serviceError:   review.ErrStatsNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				postponeFn: func(ctx context.Context, uid, qid uuid.UUID, days int) (*domain.ReviewStats, error) {
					if tc.serviceError != nil {
						return nil, tc.serviceError
					}
					return &domain.ReviewStats{
						UserID:       uid,
						QuestionID:   qid,
						EaseFactor:   2.5,
						NextReviewAt: time.Now().UTC().AddDate(0, 0, days),
					}, nil
				},
			}
			handler := NewReviewHandler(mockService, testLogger())

			req := newAuthedRequest(
				"POST", "/api/reviews/"+questionID.String()+"/postpone",
				[]byte(tc.body), userID,
				map[string]string{"question_id": questionID.String()})
			rr := httptest.NewRecorder()

			handler.PostponeReview(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}
		})
	}
}

func TestDailyLoad(t *testing.T) {
	userID := uuid.New()

	mockService := &mockReviewService{
		sessionFn: func(ctx context.Context, uid uuid.UUID) (*review.DailySession, error) {
			return &review.DailySession{TotalDue: 120, Recommended: 50}, nil
		},
	}
	handler := NewReviewHandler(mockService, testLogger())

	req := newAuthedRequest("GET", "/api/reviews/load", nil, userID, nil)
	rr := httptest.NewRecorder()

	handler.DailyLoad(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var response DailyLoadResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if response.TotalDue != 120 || response.Recommended != 50 {
		t.Errorf("unexpected load response: %+v", response)
	}
}

func TestStreak(t *testing.T) {
	mockService := &mockReviewService{
		streakFn: func(ctx context.Context, uid uuid.UUID) (int, error) {
			return 7, nil
		},
	}
	handler := NewReviewHandler(mockService, testLogger())

	req := newAuthedRequest("GET", "/api/streak", nil, uuid.New(), nil)
	rr := httptest.NewRecorder()

	handler.Streak(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var response StreakResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if response.Streak != 7 {
		t.Errorf("wrong streak: got %v want 7", response.Streak)
	}
}

func TestStreak_Unauthorized(t *testing.T) {
	handler := NewReviewHandler(&mockReviewService{}, testLogger())

	req := newAuthedRequest("GET", "/api/streak", nil, uuid.Nil, nil)
	rr := httptest.NewRecorder()

	handler.Streak(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
}
