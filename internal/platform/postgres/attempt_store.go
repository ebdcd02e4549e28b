package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/platform/logger"
	"github.com/phrazzld/curricula-api/internal/store"
)

// attemptConstraintErrors maps named unique constraints on the
// exercise_attempts table to their specific store errors.
var attemptConstraintErrors = map[string]error{
	"exercise_attempts_user_exercise_number_key": store.ErrAttemptNumberTaken,
}

// PostgresAttemptStore implements the store.AttemptStore interface
// using a PostgreSQL database as the storage backend. Attempt rows are
// append-only; this store exposes no update or delete operations.
type PostgresAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttemptStore creates a new PostgreSQL implementation of the
// AttemptStore interface. If logger is nil, a default logger will be used.
func NewPostgresAttemptStore(db store.DBTX, logger *slog.Logger) *PostgresAttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "attempt_store")),
	}
}

// Ensure PostgresAttemptStore implements store.AttemptStore interface
var _ store.AttemptStore = (*PostgresAttemptStore)(nil)

// Create implements store.AttemptStore.Create
// Returns store.ErrInvalidEntity if the user or exercise ID references a
// missing row (foreign key violation), and store.ErrAttemptNumberTaken if
// a concurrent submission already recorded the same attempt number.
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.ExerciseAttempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		log.Warn("attempt validation failed during create",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()))
		return err
	}

	query := `
		INSERT INTO exercise_attempts (id, user_id, exercise_id, answer, is_correct, points_earned, time_spent_seconds, attempt_number, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.UserID,
		attempt.ExerciseID,
		attempt.Answer,
		attempt.IsCorrect,
		attempt.PointsEarned,
		attempt.TimeSpentSeconds,
		attempt.AttemptNumber,
		attempt.Feedback,
		attempt.CreatedAt,
	)
	if err != nil {
		mapped := mapUniqueViolation(err, attemptConstraintErrors)
		log.Error("failed to create attempt",
			slog.String("error", err.Error()),
			slog.String("attempt_id", attempt.ID.String()),
			slog.String("user_id", attempt.UserID.String()),
			slog.String("exercise_id", attempt.ExerciseID.String()))
		return mapped
	}

	log.Debug("attempt recorded",
		slog.String("attempt_id", attempt.ID.String()),
		slog.String("user_id", attempt.UserID.String()),
		slog.String("exercise_id", attempt.ExerciseID.String()),
		slog.Bool("is_correct", attempt.IsCorrect),
		slog.Int("attempt_number", attempt.AttemptNumber))
	return nil
}

// CountByUserAndExercise implements store.AttemptStore.CountByUserAndExercise
func (s *PostgresAttemptStore) CountByUserAndExercise(ctx context.Context, userID, exerciseID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM exercise_attempts
		WHERE user_id = $1 AND exercise_id = $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, exerciseID).Scan(&count); err != nil {
		log.Error("failed to count attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("exercise_id", exerciseID.String()))
		return 0, err
	}

	return count, nil
}

// ListCorrectByUserAndCourse implements store.AttemptStore.ListCorrectByUserAndCourse
// It joins attempts to their exercises' lessons so the aggregator can count
// distinct completed lessons. The join deliberately ignores soft-delete
// flags on exercises and lessons: recorded history stays counted.
func (s *PostgresAttemptStore) ListCorrectByUserAndCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
) ([]*store.CourseAttempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT a.id, a.user_id, a.exercise_id, a.answer, a.is_correct, a.points_earned, a.time_spent_seconds, a.attempt_number, a.feedback, a.created_at, e.lesson_id
		FROM exercise_attempts a
		JOIN exercises e ON e.id = a.exercise_id
		JOIN lessons l ON l.id = e.lesson_id
		WHERE a.user_id = $1 AND a.is_correct = TRUE AND l.course_id = $2
		ORDER BY a.created_at, a.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		log.Error("failed to list correct attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var attempts []*store.CourseAttempt
	for rows.Next() {
		var attempt store.CourseAttempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.ExerciseID,
			&attempt.Answer,
			&attempt.IsCorrect,
			&attempt.PointsEarned,
			&attempt.TimeSpentSeconds,
			&attempt.AttemptNumber,
			&attempt.Feedback,
			&attempt.CreatedAt,
			&attempt.LessonID,
		)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, &attempt)
	}

	return attempts, rows.Err()
}

// WithTx implements store.AttemptStore.WithTx
func (s *PostgresAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &PostgresAttemptStore{
		db:     tx,
		logger: s.logger,
	}
}
