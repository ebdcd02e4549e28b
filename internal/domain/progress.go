package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Progress-specific validation errors
var (
	ErrProgressIDEmpty       = errors.New("progress snapshot ID cannot be empty")
	ErrProgressUserIDEmpty   = errors.New("progress snapshot user ID cannot be empty")
	ErrProgressCourseIDEmpty = errors.New("progress snapshot course ID cannot be empty")
	ErrProgressPercentRange  = errors.New("completion percentage must be between 0 and 100")
)

// ProgressSnapshot is the single aggregate-progress record for one
// (user, course) pair. The storage layer enforces uniqueness on the pair;
// the snapshot is created on first save and updated in place afterwards,
// never deleted.
//
// ExercisesCompleted counts correct *attempts*, not distinct exercises: two
// correct attempts on the same exercise both count. LessonsCompleted counts
// distinct lessons with at least one correct attempt.
type ProgressSnapshot struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               uuid.UUID  `json:"user_id"`
	CourseID             uuid.UUID  `json:"course_id"`
	CurrentLessonID      *uuid.UUID `json:"current_lesson_id,omitempty"`
	LessonsCompleted     int        `json:"lessons_completed"`
	ExercisesCompleted   int        `json:"exercises_completed"`
	TotalPoints          int        `json:"total_points"`
	CompletionPercentage float64    `json:"completion_percentage"`
	LastActivityAt       time.Time  `json:"last_activity_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewProgressSnapshot creates an empty snapshot for the given (user, course)
// pair. Returns an error if validation fails.
func NewProgressSnapshot(userID, courseID uuid.UUID) (*ProgressSnapshot, error) {
	now := time.Now().UTC()
	snapshot := &ProgressSnapshot{
		ID:             uuid.New(),
		UserID:         userID,
		CourseID:       courseID,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Validate checks if the ProgressSnapshot has valid data.
func (p *ProgressSnapshot) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProgressIDEmpty
	}

	if p.UserID == uuid.Nil {
		return ErrProgressUserIDEmpty
	}

	if p.CourseID == uuid.Nil {
		return ErrProgressCourseIDEmpty
	}

	if p.CompletionPercentage < 0 || p.CompletionPercentage > 100 {
		return ErrProgressPercentRange
	}

	return nil
}
