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

// courseColumns is the column list shared by all course SELECTs.
const courseColumns = `id, title, description, difficulty, is_published, order_index, created_at, updated_at, deleted_at`

// PostgresCourseStore implements the store.CourseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the
// CourseStore interface. If logger is nil, a default logger will be used.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore interface
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// Create implements store.CourseStore.Create
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during create",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	query := `
		INSERT INTO courses (id, title, description, difficulty, is_published, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		course.ID,
		course.Title,
		course.Description,
		course.Difficulty,
		course.IsPublished,
		course.OrderIndex,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	log.Info("course created successfully",
		slog.String("course_id", course.ID.String()),
		slog.String("title", course.Title))
	return nil
}

// GetByID implements store.CourseStore.GetByID
// Returns store.ErrCourseNotFound if the course does not exist or is
// soft-deleted.
func (s *PostgresCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE id = $1 AND deleted_at IS NULL
	`

	course, err := scanCourse(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found", slog.String("course_id", id.String()))
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course by ID",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, err
	}

	return course, nil
}

// ListPublished implements store.CourseStore.ListPublished
func (s *PostgresCourseStore) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE is_published = TRUE AND deleted_at IS NULL
		ORDER BY order_index, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list published courses", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var courses []*domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// Update implements store.CourseStore.Update
// Returns store.ErrCourseNotFound if the course does not exist.
func (s *PostgresCourseStore) Update(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during update",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	course.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE courses
		SET title = $1, description = $2, difficulty = $3, is_published = $4, order_index = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		course.Title,
		course.Description,
		course.Difficulty,
		course.IsPublished,
		course.OrderIndex,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "course"); err != nil {
		return store.ErrCourseNotFound
	}

	return nil
}

// SoftDelete implements store.CourseStore.SoftDelete
// Marks the course deleted and unpublished so progress computations skip it.
func (s *PostgresCourseStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	query := `
		UPDATE courses
		SET deleted_at = $1, is_published = FALSE, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, now, id)
	if err != nil {
		log.Error("failed to soft-delete course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "course"); err != nil {
		return store.ErrCourseNotFound
	}

	log.Info("course soft-deleted", slog.String("course_id", id.String()))
	return nil
}

// WithTx implements store.CourseStore.WithTx
func (s *PostgresCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &PostgresCourseStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCourse scans one course row.
func scanCourse(row rowScanner) (*domain.Course, error) {
	var course domain.Course
	var difficulty string
	var deletedAt sql.NullTime

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&difficulty,
		&course.IsPublished,
		&course.OrderIndex,
		&course.CreatedAt,
		&course.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	course.Difficulty = domain.Difficulty(difficulty)
	if deletedAt.Valid {
		t := deletedAt.Time
		course.DeletedAt = &t
	}

	return &course, nil
}
