package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidDifficulty is returned when a difficulty level is not one of
	// the recognized values.
	ErrInvalidDifficulty = errors.New("invalid difficulty level")

	// ErrInvalidExerciseType is returned when an exercise type is not one of
	// the recognized values.
	ErrInvalidExerciseType = errors.New("invalid exercise type")

	// ErrUnauthorized is returned when an operation is not permitted for the
	// requesting user.
	ErrUnauthorized = errors.New("unauthorized operation")
)
