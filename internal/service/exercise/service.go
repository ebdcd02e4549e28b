// Package exercise orchestrates answer submission: grade the answer, append
// an immutable attempt record, then refresh the user's progress snapshot for
// the owning course.
package exercise

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// SubmitResult is the outcome of one answer submission.
type SubmitResult struct {
	// Attempt is the recorded attempt, including its verdict, points earned
	// and 1-based attempt number.
	Attempt *domain.ExerciseAttempt

	// Progress is the refreshed snapshot for the course the exercise
	// belongs to.
	Progress *domain.ProgressSnapshot

	// Explanation is the exercise's authored explanation, shown to the
	// learner after grading.
	Explanation string
}

// Service grades and records exercise submissions.
type Service interface {
	// SubmitAnswer grades the answer against the stored exercise, appends
	// an attempt record, and recomputes the user's progress for the
	// exercise's course. A malformed answer grades as incorrect; it is
	// never an error.
	// Returns store.ErrExerciseNotFound if the exercise does not exist or
	// is deleted.
	SubmitAnswer(ctx context.Context, userID, exerciseID uuid.UUID, answer string, timeSpentSeconds int) (*SubmitResult, error)
}
