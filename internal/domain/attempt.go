package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Attempt-specific validation errors
var (
	ErrAttemptIDEmpty         = errors.New("attempt ID cannot be empty")
	ErrAttemptUserIDEmpty     = errors.New("attempt user ID cannot be empty")
	ErrAttemptExerciseIDEmpty = errors.New("attempt exercise ID cannot be empty")
	ErrAttemptNumberInvalid   = errors.New("attempt number must be positive")
)

// ExerciseAttempt records one submission of an answer to one exercise.
// Attempts are append-only: once created they are never mutated, so the full
// history can be re-aggregated into a progress snapshot at any time.
type ExerciseAttempt struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	ExerciseID       uuid.UUID `json:"exercise_id"`
	Answer           string    `json:"answer"`
	IsCorrect        bool      `json:"is_correct"`
	PointsEarned     int       `json:"points_earned"`
	TimeSpentSeconds int       `json:"time_spent_seconds,omitempty"`
	AttemptNumber    int       `json:"attempt_number"`
	Feedback         string    `json:"feedback,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewExerciseAttempt creates a new immutable attempt record. PointsEarned is
// the exercise's point value for a correct answer and zero otherwise;
// attemptNumber is 1-based and counts this user's submissions to this
// exercise. Returns an error if validation fails.
func NewExerciseAttempt(
	userID, exerciseID uuid.UUID,
	answer string,
	isCorrect bool,
	pointsEarned, attemptNumber int,
) (*ExerciseAttempt, error) {
	attempt := &ExerciseAttempt{
		ID:            uuid.New(),
		UserID:        userID,
		ExerciseID:    exerciseID,
		Answer:        answer,
		IsCorrect:     isCorrect,
		PointsEarned:  pointsEarned,
		AttemptNumber: attemptNumber,
		CreatedAt:     time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the ExerciseAttempt has valid data.
func (a *ExerciseAttempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAttemptIDEmpty
	}

	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}

	if a.ExerciseID == uuid.Nil {
		return ErrAttemptExerciseIDEmpty
	}

	if a.AttemptNumber < 1 {
		return ErrAttemptNumberInvalid
	}

	return nil
}
