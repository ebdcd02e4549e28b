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

// lessonColumns is the column list shared by all lesson SELECTs.
const lessonColumns = `id, course_id, title, description, content, order_index, duration_minutes, is_published, created_at, updated_at, deleted_at`

// PostgresLessonStore implements the store.LessonStore interface
// using a PostgreSQL database as the storage backend.
//
// Ordered queries sort by (order_index, id) ascending; the ID tiebreak keeps
// the next-lesson relation deterministic when order indexes collide.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the
// LessonStore interface. If logger is nil, a default logger will be used.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure PostgresLessonStore implements store.LessonStore interface
var _ store.LessonStore = (*PostgresLessonStore)(nil)

// Create implements store.LessonStore.Create
// Returns store.ErrInvalidEntity if the course ID references a missing
// course (foreign key violation).
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	query := `
		INSERT INTO lessons (id, course_id, title, description, content, order_index, duration_minutes, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		lesson.ID,
		lesson.CourseID,
		lesson.Title,
		lesson.Description,
		lesson.Content,
		lesson.OrderIndex,
		lesson.DurationMinutes,
		lesson.IsPublished,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()),
			slog.String("course_id", lesson.CourseID.String()))
		return MapError(err)
	}

	log.Info("lesson created successfully",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("course_id", lesson.CourseID.String()))
	return nil
}

// GetByID implements store.LessonStore.GetByID
// Returns store.ErrLessonNotFound if the lesson does not exist or is
// soft-deleted.
func (s *PostgresLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE id = $1 AND deleted_at IS NULL
	`
	return s.getOne(ctx, query, id)
}

// ListByCourse implements store.LessonStore.ListByCourse
func (s *PostgresLessonStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1 AND is_published = TRUE AND deleted_at IS NULL
		ORDER BY order_index, id
	`

	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		log.Error("failed to list lessons by course",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var lessons []*domain.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

// GetFirstPublished implements store.LessonStore.GetFirstPublished
// Returns store.ErrLessonNotFound if the course has no eligible lessons.
func (s *PostgresLessonStore) GetFirstPublished(ctx context.Context, courseID uuid.UUID) (*domain.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1 AND is_published = TRUE AND deleted_at IS NULL
		ORDER BY order_index, id
		LIMIT 1
	`
	return s.getOne(ctx, query, courseID)
}

// GetNextPublished implements store.LessonStore.GetNextPublished
// It returns the eligible lesson with the smallest order_index strictly
// greater than afterOrderIndex, breaking ties by ascending ID.
// Returns store.ErrLessonNotFound if no such lesson exists.
func (s *PostgresLessonStore) GetNextPublished(
	ctx context.Context,
	courseID uuid.UUID,
	afterOrderIndex int,
) (*domain.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1 AND order_index > $2 AND is_published = TRUE AND deleted_at IS NULL
		ORDER BY order_index, id
		LIMIT 1
	`
	return s.getOne(ctx, query, courseID, afterOrderIndex)
}

// CountPublished implements store.LessonStore.CountPublished
func (s *PostgresLessonStore) CountPublished(ctx context.Context, courseID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM lessons
		WHERE course_id = $1 AND is_published = TRUE AND deleted_at IS NULL
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		log.Error("failed to count published lessons",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return 0, err
	}

	return count, nil
}

// Update implements store.LessonStore.Update
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during update",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	lesson.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE lessons
		SET title = $1, description = $2, content = $3, order_index = $4, duration_minutes = $5, is_published = $6, updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		lesson.Title,
		lesson.Description,
		lesson.Content,
		lesson.OrderIndex,
		lesson.DurationMinutes,
		lesson.IsPublished,
		lesson.UpdatedAt,
		lesson.ID,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "lesson"); err != nil {
		return store.ErrLessonNotFound
	}

	return nil
}

// SoftDelete implements store.LessonStore.SoftDelete
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	query := `
		UPDATE lessons
		SET deleted_at = $1, is_published = FALSE, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, now, id)
	if err != nil {
		log.Error("failed to soft-delete lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "lesson"); err != nil {
		return store.ErrLessonNotFound
	}

	log.Info("lesson soft-deleted", slog.String("lesson_id", id.String()))
	return nil
}

// WithTx implements store.LessonStore.WithTx
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{
		db:     tx,
		logger: s.logger,
	}
}

// getOne runs a single-row lesson query and maps sql.ErrNoRows to
// store.ErrLessonNotFound.
func (s *PostgresLessonStore) getOne(ctx context.Context, query string, args ...any) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lesson, err := scanLesson(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		log.Error("failed to get lesson", slog.String("error", err.Error()))
		return nil, err
	}

	return lesson, nil
}

// scanLesson scans one lesson row.
func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var lesson domain.Lesson
	var deletedAt sql.NullTime

	err := row.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.Content,
		&lesson.OrderIndex,
		&lesson.DurationMinutes,
		&lesson.IsPublished,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		lesson.DeletedAt = &t
	}

	return &lesson, nil
}
