package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultExercisePoints is the point value assigned to an exercise when no
// explicit value is authored.
const DefaultExercisePoints = 10

// Exercise-specific validation errors
var (
	ErrExerciseIDEmpty        = errors.New("exercise ID cannot be empty")
	ErrExerciseLessonIDEmpty  = errors.New("exercise lesson ID cannot be empty")
	ErrExerciseQuestionEmpty  = errors.New("exercise question cannot be empty")
	ErrExerciseNegativePoints = errors.New("exercise points cannot be negative")
)

// Exercise is a gradable question attached to a lesson. CorrectAnswer is a
// type-dependent text representation: the option index for multiple-choice
// exercises, the expected answer text for everything else. Options holds the
// authored choice list for multiple-choice exercises as a JSON array.
type Exercise struct {
	ID            uuid.UUID       `json:"id"`
	LessonID      uuid.UUID       `json:"lesson_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Question      string          `json:"question"`
	Type          ExerciseType    `json:"exercise_type"`
	Difficulty    Difficulty      `json:"difficulty"`
	OrderIndex    int             `json:"order_index"`
	Points        int             `json:"points"`
	Options       json.RawMessage `json:"options,omitempty"`
	CorrectAnswer string          `json:"-"` // Never exposed to clients
	Hint          string          `json:"hint,omitempty"`
	Explanation   string          `json:"explanation,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"-"`
}

// NewExercise creates a new Exercise for the given lesson with the default
// point value. Returns an error if validation fails.
func NewExercise(
	lessonID uuid.UUID,
	title, question string,
	exerciseType ExerciseType,
	correctAnswer string,
) (*Exercise, error) {
	exercise := &Exercise{
		ID:            uuid.New(),
		LessonID:      lessonID,
		Title:         title,
		Question:      question,
		Type:          exerciseType,
		Difficulty:    DifficultyBeginner,
		Points:        DefaultExercisePoints,
		CorrectAnswer: correctAnswer,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// Validate checks if the Exercise has valid data.
func (e *Exercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrExerciseIDEmpty
	}

	if e.LessonID == uuid.Nil {
		return ErrExerciseLessonIDEmpty
	}

	if strings.TrimSpace(e.Question) == "" {
		return ErrExerciseQuestionEmpty
	}

	if !e.Type.IsValid() {
		return ErrInvalidExerciseType
	}

	if !e.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	if e.Points < 0 {
		return ErrExerciseNegativePoints
	}

	return nil
}

// SoftDelete marks the exercise deleted.
func (e *Exercise) SoftDelete(now time.Time) {
	t := now.UTC()
	e.DeletedAt = &t
	e.UpdatedAt = t
}
