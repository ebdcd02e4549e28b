package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/curricula-api/internal/config"
	"github.com/phrazzld/curricula-api/internal/content"
	"github.com/phrazzld/curricula-api/internal/platform/postgres"
	"github.com/phrazzld/curricula-api/internal/service/auth"
	"github.com/phrazzld/curricula-api/internal/service/exercise"
	"github.com/phrazzld/curricula-api/internal/service/progress"
	"github.com/phrazzld/curricula-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (interfaces, so tests can substitute doubles)
	userStore     store.UserStore
	courseStore   store.CourseStore
	lessonStore   store.LessonStore
	exerciseStore store.ExerciseStore
	attemptStore  store.AttemptStore
	progressStore store.ProgressStore
	contentStore  content.Store

	// Services
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	progressService  progress.Service
	exerciseService  exercise.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logging and the database connection must be
// established by the caller.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.courseStore = postgres.NewPostgresCourseStore(db, logger)
	app.lessonStore = postgres.NewPostgresLessonStore(db, logger)
	app.exerciseStore = postgres.NewPostgresExerciseStore(db, logger)
	app.attemptStore = postgres.NewPostgresAttemptStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)

	app.contentStore = content.NewFileStore(cfg.Content.Dir, logger)
	logger.Info("content store initialized", "dir", cfg.Content.Dir)

	app.progressService = progress.NewService(
		app.courseStore,
		app.lessonStore,
		app.attemptStore,
		app.progressStore,
		logger,
	)

	app.exerciseService = exercise.NewService(
		db,
		app.exerciseStore,
		app.lessonStore,
		app.attemptStore,
		app.progressService,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
