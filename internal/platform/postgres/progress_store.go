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

// progressColumns is the column list shared by all snapshot SELECTs.
const progressColumns = `id, user_id, course_id, current_lesson_id, lessons_completed, exercises_completed, total_points, completion_percentage, last_activity_at, created_at, updated_at`

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
//
// The progress_snapshots table carries a unique constraint on
// (user_id, course_id); Upsert relies on INSERT ... ON CONFLICT DO UPDATE so
// concurrent saves for the same pair serialize inside PostgreSQL instead of
// racing a check-then-insert in application code.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Get implements store.ProgressStore.Get
// Returns store.ErrProgressNotFound if no snapshot exists for the pair.
func (s *PostgresProgressStore) Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.ProgressSnapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM progress_snapshots
		WHERE user_id = $1 AND course_id = $2
	`

	snapshot, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, courseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress snapshot not found",
				slog.String("user_id", userID.String()),
				slog.String("course_id", courseID.String()))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get progress snapshot",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return nil, err
	}

	return snapshot, nil
}

// ListByUser implements store.ProgressStore.ListByUser
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressSnapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM progress_snapshots
		WHERE user_id = $1
		ORDER BY last_activity_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list progress snapshots",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []*domain.ProgressSnapshot
	for rows.Next() {
		snapshot, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// Upsert implements store.ProgressStore.Upsert
// It performs a single atomic conditional write keyed on the
// (user_id, course_id) unique constraint. On conflict the existing row is
// updated in place and keeps its identity and created_at; the snapshot
// argument is refreshed from the persisted row either way.
func (s *PostgresProgressStore) Upsert(ctx context.Context, snapshot *domain.ProgressSnapshot) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := snapshot.Validate(); err != nil {
		log.Warn("progress snapshot validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", snapshot.UserID.String()),
			slog.String("course_id", snapshot.CourseID.String()))
		return err
	}

	snapshot.UpdatedAt = time.Now().UTC()

	// COALESCE preserves the stored current lesson pointer when the caller
	// did not supply a new one.
	query := `
		INSERT INTO progress_snapshots (id, user_id, course_id, current_lesson_id, lessons_completed, exercises_completed, total_points, completion_percentage, last_activity_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			current_lesson_id = COALESCE(EXCLUDED.current_lesson_id, progress_snapshots.current_lesson_id),
			lessons_completed = EXCLUDED.lessons_completed,
			exercises_completed = EXCLUDED.exercises_completed,
			total_points = EXCLUDED.total_points,
			completion_percentage = EXCLUDED.completion_percentage,
			last_activity_at = EXCLUDED.last_activity_at,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + progressColumns + `
	`

	persisted, err := scanProgress(s.db.QueryRowContext(
		ctx,
		query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.CourseID,
		nullableUUID(snapshot.CurrentLessonID),
		snapshot.LessonsCompleted,
		snapshot.ExercisesCompleted,
		snapshot.TotalPoints,
		snapshot.CompletionPercentage,
		snapshot.LastActivityAt,
		snapshot.CreatedAt,
		snapshot.UpdatedAt,
	))
	if err != nil {
		log.Error("failed to upsert progress snapshot",
			slog.String("error", err.Error()),
			slog.String("user_id", snapshot.UserID.String()),
			slog.String("course_id", snapshot.CourseID.String()))
		return MapError(err)
	}

	*snapshot = *persisted

	log.Debug("progress snapshot upserted",
		slog.String("snapshot_id", snapshot.ID.String()),
		slog.String("user_id", snapshot.UserID.String()),
		slog.String("course_id", snapshot.CourseID.String()),
		slog.Float64("completion_percentage", snapshot.CompletionPercentage))
	return nil
}

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanProgress scans one snapshot row.
func scanProgress(row rowScanner) (*domain.ProgressSnapshot, error) {
	var snapshot domain.ProgressSnapshot
	var currentLesson uuid.NullUUID

	err := row.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.CourseID,
		&currentLesson,
		&snapshot.LessonsCompleted,
		&snapshot.ExercisesCompleted,
		&snapshot.TotalPoints,
		&snapshot.CompletionPercentage,
		&snapshot.LastActivityAt,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if currentLesson.Valid {
		id := currentLesson.UUID
		snapshot.CurrentLessonID = &id
	}

	return &snapshot, nil
}

// nullableUUID converts a nil pointer to a SQL NULL.
func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
