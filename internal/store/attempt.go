package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// CourseAttempt is an exercise attempt joined with the lesson its exercise
// belongs to. The lesson ID is what the progress aggregator needs to count
// distinct completed lessons without traversing an object graph.
type CourseAttempt struct {
	domain.ExerciseAttempt

	// LessonID is the lesson the attempted exercise belongs to.
	LessonID uuid.UUID
}

// AttemptStore defines the interface for exercise attempt persistence.
// Attempts are append-only; there are no update or delete operations.
type AttemptStore interface {
	// Create appends a new attempt record.
	// Returns validation errors from the domain ExerciseAttempt if data is
	// invalid. Returns ErrInvalidEntity if the user or exercise ID
	// references a missing row.
	Create(ctx context.Context, attempt *domain.ExerciseAttempt) error

	// CountByUserAndExercise returns how many attempts the user has made on
	// the exercise. Used to assign the next attempt number.
	CountByUserAndExercise(ctx context.Context, userID, exerciseID uuid.UUID) (int, error)

	// ListCorrectByUserAndCourse returns every correct attempt the user has
	// made on exercises belonging to the course's lessons, joined with the
	// owning lesson ID. Attempts on soft-deleted exercises or lessons still
	// qualify: the history referenced them while they were live.
	ListCorrectByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) ([]*CourseAttempt, error)

	// WithTx returns a new AttemptStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) AttemptStore
}
