package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// ExerciseStore defines the interface for exercise data persistence.
type ExerciseStore interface {
	// Create saves a new exercise to the store.
	// Returns validation errors from the domain Exercise if data is invalid.
	// Returns ErrInvalidEntity if the lesson ID references a missing lesson.
	Create(ctx context.Context, exercise *domain.Exercise) error

	// GetByID retrieves an exercise by its unique ID.
	// Returns ErrExerciseNotFound if the exercise does not exist or is
	// soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)

	// ListByLesson returns the non-deleted exercises of a lesson ordered by
	// (order_index, id) ascending.
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Exercise, error)

	// SoftDelete marks an exercise deleted.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ExerciseStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ExerciseStore
}
