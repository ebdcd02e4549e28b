package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Soft-deleted rows are treated as not found by read operations.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g. a second snapshot for the same user and course).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCourseNotFound indicates that the requested course does not exist
	// or is soft-deleted.
	ErrCourseNotFound = fmt.Errorf("%w: course", ErrNotFound)

	// ErrLessonNotFound indicates that the requested lesson does not exist
	// or is soft-deleted.
	ErrLessonNotFound = fmt.Errorf("%w: lesson", ErrNotFound)

	// ErrExerciseNotFound indicates that the requested exercise does not
	// exist or is soft-deleted.
	ErrExerciseNotFound = fmt.Errorf("%w: exercise", ErrNotFound)

	// ErrProgressNotFound indicates that no progress snapshot exists for the
	// requested (user, course) pair.
	ErrProgressNotFound = fmt.Errorf("%w: progress snapshot", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrUsernameExists indicates that a user with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrProgressExists indicates that a snapshot already exists for the
	// (user, course) pair. Upsert implementations recover from this
	// internally; it surfaces only from plain Create operations.
	ErrProgressExists = fmt.Errorf("%w: progress snapshot", ErrDuplicate)

	// ErrAttemptNumberTaken indicates that another submission claimed the
	// same attempt number for the (user, exercise) pair first. Callers
	// recount and retry.
	ErrAttemptNumberTaken = fmt.Errorf("%w: attempt number", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
