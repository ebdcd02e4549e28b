package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/curricula-api/internal/api/shared"
	"github.com/phrazzld/curricula-api/internal/content"
	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/service/auth"
	"github.com/phrazzld/curricula-api/internal/service/progress"
	"github.com/phrazzld/curricula-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error types
// or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrCourseNotFound),
		errors.Is(err, store.ErrLessonNotFound),
		errors.Is(err, store.ErrExerciseNotFound),
		errors.Is(err, store.ErrProgressNotFound),
		errors.Is(err, content.ErrLessonNotFound),
		errors.Is(err, content.ErrExerciseNotFound),
		errors.Is(err, progress.ErrNoLessonsAvailable),
		errors.Is(err, progress.ErrLessonNotInCourse):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrUsernameExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return "Operation not permitted"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, store.ErrLessonNotFound),
		errors.Is(err, content.ErrLessonNotFound):
		return "Lesson not found"

	case errors.Is(err, store.ErrExerciseNotFound),
		errors.Is(err, content.ErrExerciseNotFound):
		return "Exercise not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Progress not found"

	case errors.Is(err, progress.ErrNoLessonsAvailable):
		return "Course has no lessons"

	case errors.Is(err, progress.ErrLessonNotInCourse):
		return "Lesson not found in course"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps a service or store error to its HTTP status code
// and safe message, writes the response, and logs the underlying error.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(
		w,
		r,
		MapErrorToStatusCode(err),
		GetSafeErrorMessage(err),
		err,
	)
}
