package content

import "errors"

// Content lookup errors
var (
	// ErrLessonNotFound indicates no lesson document exists for the ID.
	ErrLessonNotFound = errors.New("content lesson not found")

	// ErrExerciseNotFound indicates the lesson document has no exercise
	// with the requested ID.
	ErrExerciseNotFound = errors.New("content exercise not found")
)
