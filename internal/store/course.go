package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// CourseStore defines the interface for course data persistence.
type CourseStore interface {
	// Create saves a new course to the store.
	// Returns validation errors from the domain Course if data is invalid.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by its unique ID.
	// Returns ErrCourseNotFound if the course does not exist or is
	// soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// ListPublished returns all published, non-deleted courses ordered by
	// order_index, then by ID for a stable ordering.
	ListPublished(ctx context.Context) ([]*domain.Course, error)

	// Update modifies an existing course's details.
	// Returns ErrCourseNotFound if the course does not exist.
	Update(ctx context.Context, course *domain.Course) error

	// SoftDelete marks a course deleted and unpublished, hiding it from
	// progress computations. Returns ErrCourseNotFound if the course does
	// not exist.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CourseStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) CourseStore
}
