package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jwhitaker/certprep-api/internal/api"
	apiMiddleware "github.com/jwhitaker/certprep-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	planHandler := api.NewPlanHandler(app.studyPlanService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Review scheduling endpoints
			r.Post("/reviews/{question_id}", reviewHandler.SubmitReview)
			r.Post("/reviews/{question_id}/postpone", reviewHandler.PostponeReview)
			r.Get("/reviews/load", reviewHandler.DailyLoad)
			r.Get("/streak", reviewHandler.Streak)

			// Study plan endpoints
			r.Post("/plans", planHandler.GeneratePlan)
			r.Post("/plans/{id}/regenerate", planHandler.RegeneratePlan)
			r.Get("/plans/active", planHandler.GetActivePlan)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
