package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/curricula-api/internal/api"
	apiMiddleware "github.com/phrazzld/curricula-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	lessonHandler := api.NewLessonHandler(app.contentStore)
	courseHandler := api.NewCourseHandler(app.progressService)
	exerciseHandler := api.NewExerciseHandler(app.exerciseService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Authored content endpoints (public, read-only)
		r.Get("/lessons", lessonHandler.ListLessons)
		r.Get("/lessons/{lessonID}", lessonHandler.GetLesson)
		r.Get("/lessons/{lessonID}/exercises/{exerciseID}", lessonHandler.GetExercise)
		r.Post("/lessons/{lessonID}/exercises/{exerciseID}/validate", lessonHandler.ValidateAnswer)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Progress and lesson sequencing
			r.Get("/courses/{id}/current-lesson", courseHandler.GetCurrentLesson)
			r.Post("/courses/{id}/advance", courseHandler.AdvanceLesson)
			r.Get("/courses/{id}/progress", courseHandler.GetProgress)
			r.Post("/courses/{id}/progress", courseHandler.SaveProgress)
			r.Get("/progress", courseHandler.ListProgress)

			// Graded attempts
			r.Post("/exercises/{id}/attempts", exerciseHandler.SubmitAnswer)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
