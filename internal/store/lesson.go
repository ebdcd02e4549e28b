package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// LessonStore defines the interface for lesson data persistence.
//
// All ordered queries sort by (order_index, id) ascending. The secondary ID
// sort keeps the next-lesson relation deterministic when two lessons share
// an order_index.
type LessonStore interface {
	// Create saves a new lesson to the store.
	// Returns validation errors from the domain Lesson if data is invalid.
	// Returns ErrInvalidEntity if the course ID references a missing course.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist or is
	// soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListByCourse returns the published, non-deleted lessons of a course in
	// curriculum order.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)

	// GetFirstPublished returns the first published, non-deleted lesson of a
	// course in curriculum order.
	// Returns ErrLessonNotFound if the course has no eligible lessons.
	GetFirstPublished(ctx context.Context, courseID uuid.UUID) (*domain.Lesson, error)

	// GetNextPublished returns the published, non-deleted lesson of the
	// course with the smallest order_index strictly greater than the given
	// one, breaking ties by ascending ID.
	// Returns ErrLessonNotFound if no such lesson exists.
	GetNextPublished(ctx context.Context, courseID uuid.UUID, afterOrderIndex int) (*domain.Lesson, error)

	// CountPublished returns the number of published, non-deleted lessons in
	// a course. Used as the completion-percentage denominator.
	CountPublished(ctx context.Context, courseID uuid.UUID) (int, error)

	// Update modifies an existing lesson's details.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Update(ctx context.Context, lesson *domain.Lesson) error

	// SoftDelete marks a lesson deleted and unpublished.
	// Returns ErrLessonNotFound if the lesson does not exist.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new LessonStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) LessonStore
}
