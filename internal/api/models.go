package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/content"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Username string `json:"username"  validate:"required,min=3,max=64"`
	Password string `json:"password"  validate:"required,min=12,max=72"`
	FullName string `json:"full_name" validate:"max=255"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SaveProgressRequest defines the payload for the save-progress endpoint.
// LessonID is optional: when omitted the stored current-lesson pointer is
// preserved.
type SaveProgressRequest struct {
	LessonID *uuid.UUID `json:"lesson_id,omitempty"`
}

// AdvanceLessonRequest defines the payload for the lesson advancement
// endpoint. CurrentLessonID is the lesson the user just finished.
type AdvanceLessonRequest struct {
	CurrentLessonID uuid.UUID `json:"current_lesson_id" validate:"required"`
}

// AdvanceLessonResponse defines the response for the lesson advancement
// endpoint. Completed is true when no published lesson follows, in which
// case NextLesson is null.
type AdvanceLessonResponse struct {
	Completed  bool           `json:"completed"`
	NextLesson *domain.Lesson `json:"next_lesson"`
}

// SubmitAnswerRequest defines the payload for the answer submission
// endpoint.
type SubmitAnswerRequest struct {
	Answer           string `json:"answer"             validate:"required"`
	TimeSpentSeconds int    `json:"time_spent_seconds" validate:"gte=0"`
}

// SubmitAnswerResponse defines the response for the answer submission
// endpoint.
type SubmitAnswerResponse struct {
	Attempt     *domain.ExerciseAttempt  `json:"attempt"`
	Progress    *domain.ProgressSnapshot `json:"progress"`
	Explanation string                   `json:"explanation,omitempty"`
}

// ValidateAnswerRequest defines the payload for the content answer
// validation endpoint.
type ValidateAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// LessonListResponse defines the response for the content lesson index.
type LessonListResponse struct {
	Lessons []content.LessonSummary `json:"lessons"`
}
