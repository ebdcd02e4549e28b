package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/platform/logger"
	"github.com/phrazzld/curricula-api/internal/store"
)

// exerciseColumns is the column list shared by all exercise SELECTs.
const exerciseColumns = `id, lesson_id, title, description, question, exercise_type, difficulty, order_index, points, options, correct_answer, hint, explanation, created_at, updated_at, deleted_at`

// PostgresExerciseStore implements the store.ExerciseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExerciseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExerciseStore creates a new PostgreSQL implementation of the
// ExerciseStore interface. If logger is nil, a default logger will be used.
func NewPostgresExerciseStore(db store.DBTX, logger *slog.Logger) *PostgresExerciseStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExerciseStore{
		db:     db,
		logger: logger.With(slog.String("component", "exercise_store")),
	}
}

// Ensure PostgresExerciseStore implements store.ExerciseStore interface
var _ store.ExerciseStore = (*PostgresExerciseStore)(nil)

// Create implements store.ExerciseStore.Create
// Returns store.ErrInvalidEntity if the lesson ID references a missing
// lesson (foreign key violation).
func (s *PostgresExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exercise.Validate(); err != nil {
		log.Warn("exercise validation failed during create",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return err
	}

	query := `
		INSERT INTO exercises (id, lesson_id, title, description, question, exercise_type, difficulty, order_index, points, options, correct_answer, hint, explanation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.LessonID,
		exercise.Title,
		exercise.Description,
		exercise.Question,
		exercise.Type,
		exercise.Difficulty,
		exercise.OrderIndex,
		exercise.Points,
		nullableJSON(exercise.Options),
		exercise.CorrectAnswer,
		exercise.Hint,
		exercise.Explanation,
		exercise.CreatedAt,
		exercise.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create exercise",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()),
			slog.String("lesson_id", exercise.LessonID.String()))
		return MapError(err)
	}

	log.Info("exercise created successfully",
		slog.String("exercise_id", exercise.ID.String()),
		slog.String("lesson_id", exercise.LessonID.String()))
	return nil
}

// GetByID implements store.ExerciseStore.GetByID
// Returns store.ErrExerciseNotFound if the exercise does not exist or is
// soft-deleted.
func (s *PostgresExerciseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE id = $1 AND deleted_at IS NULL
	`

	exercise, err := scanExercise(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("exercise not found", slog.String("exercise_id", id.String()))
			return nil, store.ErrExerciseNotFound
		}
		log.Error("failed to get exercise by ID",
			slog.String("error", err.Error()),
			slog.String("exercise_id", id.String()))
		return nil, err
	}

	return exercise, nil
}

// ListByLesson implements store.ExerciseStore.ListByLesson
func (s *PostgresExerciseStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE lesson_id = $1 AND deleted_at IS NULL
		ORDER BY order_index, id
	`

	rows, err := s.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		log.Error("failed to list exercises by lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lessonID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var exercises []*domain.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	return exercises, rows.Err()
}

// SoftDelete implements store.ExerciseStore.SoftDelete
// Returns store.ErrExerciseNotFound if the exercise does not exist.
func (s *PostgresExerciseStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	query := `
		UPDATE exercises
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, now, id)
	if err != nil {
		log.Error("failed to soft-delete exercise",
			slog.String("error", err.Error()),
			slog.String("exercise_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "exercise"); err != nil {
		return store.ErrExerciseNotFound
	}

	log.Info("exercise soft-deleted", slog.String("exercise_id", id.String()))
	return nil
}

// WithTx implements store.ExerciseStore.WithTx
func (s *PostgresExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	return &PostgresExerciseStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanExercise scans one exercise row.
func scanExercise(row rowScanner) (*domain.Exercise, error) {
	var exercise domain.Exercise
	var exerciseType, difficulty string
	var options []byte
	var deletedAt sql.NullTime

	err := row.Scan(
		&exercise.ID,
		&exercise.LessonID,
		&exercise.Title,
		&exercise.Description,
		&exercise.Question,
		&exerciseType,
		&difficulty,
		&exercise.OrderIndex,
		&exercise.Points,
		&options,
		&exercise.CorrectAnswer,
		&exercise.Hint,
		&exercise.Explanation,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	exercise.Type = domain.ExerciseType(exerciseType)
	exercise.Difficulty = domain.Difficulty(difficulty)
	if len(options) > 0 {
		exercise.Options = options
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		exercise.DeletedAt = &t
	}

	return &exercise, nil
}

// nullableJSON converts an empty JSON payload to NULL for storage.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
