package exercise

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/platform/logger"
	"github.com/phrazzld/curricula-api/internal/service/grading"
	"github.com/phrazzld/curricula-api/internal/service/progress"
	"github.com/phrazzld/curricula-api/internal/store"
)

// maxAttemptNumberRetries bounds how many times a submission re-runs the
// numbering transaction after losing the attempt-number race to a
// concurrent submission.
const maxAttemptNumberRetries = 3

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db            *sql.DB
	exerciseStore store.ExerciseStore
	lessonStore   store.LessonStore
	attemptStore  store.AttemptStore
	progress      progress.Service
	logger        *slog.Logger

	// runInTx runs the attempt numbering and insert in one transaction.
	// Injected so tests can exercise the orchestration without a live
	// database.
	runInTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewService creates a new exercise submission service. The *sql.DB is used
// to record the attempt and its number inside one transaction. Panics if any
// dependency other than the logger is nil.
func NewService(
	db *sql.DB,
	exerciseStore store.ExerciseStore,
	lessonStore store.LessonStore,
	attemptStore store.AttemptStore,
	progressService progress.Service,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if exerciseStore == nil {
		panic("exerciseStore cannot be nil")
	}
	if lessonStore == nil {
		panic("lessonStore cannot be nil")
	}
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}
	if progressService == nil {
		panic("progressService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:            db,
		exerciseStore: exerciseStore,
		lessonStore:   lessonStore,
		attemptStore:  attemptStore,
		progress:      progressService,
		logger:        logger.With(slog.String("component", "exercise_service")),
		runInTx:       store.RunInTransaction,
	}
}

// Ensure serviceImpl implements Service interface
var _ Service = (*serviceImpl)(nil)

// SubmitAnswer implements Service.SubmitAnswer
func (s *serviceImpl) SubmitAnswer(
	ctx context.Context,
	userID, exerciseID uuid.UUID,
	answer string,
	timeSpentSeconds int,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ex, err := s.exerciseStore.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	verdict := grading.Grade(ex, answer)

	// Attempt numbers come from counting prior attempts inside a
	// transaction. At READ COMMITTED two concurrent submissions can still
	// both see the same count; the unique constraint on
	// (user_id, exercise_id, attempt_number) rejects the loser, which
	// recounts and retries.
	var attempt *domain.ExerciseAttempt
	for try := 1; ; try++ {
		err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			txAttempts := s.attemptStore.WithTx(tx)

			priorAttempts, err := txAttempts.CountByUserAndExercise(ctx, userID, exerciseID)
			if err != nil {
				return fmt.Errorf("failed to count prior attempts: %w", err)
			}

			attempt, err = domain.NewExerciseAttempt(
				userID,
				exerciseID,
				answer,
				verdict.IsCorrect,
				verdict.PointsEarned,
				priorAttempts+1,
			)
			if err != nil {
				return err
			}
			attempt.TimeSpentSeconds = timeSpentSeconds

			return txAttempts.Create(ctx, attempt)
		})
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrAttemptNumberTaken) && try < maxAttemptNumberRetries {
			log.Debug("attempt number taken by concurrent submission, retrying",
				slog.String("user_id", userID.String()),
				slog.String("exercise_id", exerciseID.String()),
				slog.Int("try", try))
			continue
		}
		return nil, err
	}

	lesson, err := s.lessonStore.GetByID(ctx, ex.LessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson for progress update: %w", err)
	}

	snapshot, err := s.progress.SaveProgress(ctx, userID, lesson.CourseID, &lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save progress after attempt: %w", err)
	}

	log.Info("answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", exerciseID.String()),
		slog.Bool("is_correct", attempt.IsCorrect),
		slog.Int("attempt_number", attempt.AttemptNumber),
		slog.Int("points_earned", attempt.PointsEarned))

	return &SubmitResult{
		Attempt:     attempt,
		Progress:    snapshot,
		Explanation: ex.Explanation,
	}, nil
}
