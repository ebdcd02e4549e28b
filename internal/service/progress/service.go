// Package progress computes and persists per-course progress snapshots and
// drives lesson sequencing. Snapshots are always recomputed from the full
// correct-attempt history rather than incremented, so a snapshot can never
// drift from the attempts that justify it.
package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// Service manages progress snapshots and lesson sequencing for enrolled
// users.
type Service interface {
	// SaveProgress recomputes the user's snapshot for the course from the
	// correct-attempt history and upserts it. When lessonID is non-nil the
	// snapshot's current-lesson pointer moves to it; when nil the stored
	// pointer is left untouched.
	// Returns store.ErrCourseNotFound if the course does not exist.
	SaveProgress(ctx context.Context, userID, courseID uuid.UUID, lessonID *uuid.UUID) (*domain.ProgressSnapshot, error)

	// GetProgress returns the user's snapshot for the course.
	// Returns store.ErrProgressNotFound if the user has no snapshot yet.
	GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*domain.ProgressSnapshot, error)

	// ListProgress returns all of the user's snapshots, most recently
	// active first.
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressSnapshot, error)

	// GetCurrentLesson returns the lesson the user should resume at: the
	// snapshot's current lesson when it points at a live lesson of this
	// course, the course's first published lesson otherwise.
	// Returns store.ErrCourseNotFound if the course does not exist and
	// ErrNoLessonsAvailable if it has no published lessons.
	GetCurrentLesson(ctx context.Context, userID, courseID uuid.UUID) (*domain.Lesson, error)

	// AdvanceToNextLesson moves the user from currentLessonID to the next
	// published lesson of the course in curriculum order and saves progress
	// pointing at it.
	// Returns ErrLessonNotInCourse if currentLessonID does not name a live
	// lesson of this course, and ErrCourseCompleted if no lesson follows.
	AdvanceToNextLesson(ctx context.Context, userID, courseID, currentLessonID uuid.UUID) (*domain.Lesson, error)
}
