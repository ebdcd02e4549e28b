// Package content serves read-only, authored lesson material from flat JSON
// files: a curriculum.json index plus one lessons/<id>.json document per
// lesson. Content lessons are keyed by authored string IDs, independent of
// the relational catalog, and are loaded per request so edits to the files
// show up without a restart.
package content

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/service/grading"
)

// LessonSummary is one entry of the curriculum index.
type LessonSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level,omitempty"`
	OrderIndex  int    `json:"order_index,omitempty"`
}

// Curriculum is the decoded curriculum.json index.
type Curriculum struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Lessons     []LessonSummary `json:"lessons"`
}

// LessonDoc is one authored lesson document.
type LessonDoc struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Content     string          `json:"content,omitempty"`
	Vocabulary  json.RawMessage `json:"vocabulary,omitempty"`
	Exercises   []ExerciseDoc   `json:"exercises,omitempty"`
}

// ExerciseDoc is one exercise inside a lesson document. CorrectAnswer is
// kept raw because authors write it as an option index for multiple-choice
// exercises and as a string for everything else.
type ExerciseDoc struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Question      string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correct_answer,omitempty"`
	Explanation   string          `json:"explanation,omitempty"`
	Hint          string          `json:"hint,omitempty"`
}

// CorrectAnswerText renders the authored correct answer as comparable text:
// the unquoted string when it was authored as a JSON string, the raw token
// otherwise (so the integer 2 becomes "2").
func (e *ExerciseDoc) CorrectAnswerText() string {
	var s string
	if err := json.Unmarshal(e.CorrectAnswer, &s); err == nil {
		return s
	}
	return string(e.CorrectAnswer)
}

// ValidationResult is the outcome of checking a submitted answer against an
// authored exercise. The correct answer is echoed back so the client can
// show it after a wrong submission.
type ValidationResult struct {
	Correct       bool            `json:"correct"`
	Explanation   string          `json:"explanation,omitempty"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

// Validate grades a submitted answer against an authored exercise.
func Validate(exercise *ExerciseDoc, answer string) *ValidationResult {
	correct := grading.IsCorrect(
		domain.ExerciseType(exercise.Type),
		exercise.CorrectAnswerText(),
		answer,
	)

	return &ValidationResult{
		Correct:       correct,
		Explanation:   exercise.Explanation,
		CorrectAnswer: exercise.CorrectAnswer,
	}
}

// Store defines read access to authored lesson content.
type Store interface {
	// ListLessons returns the curriculum index entries in authored order. A
	// missing curriculum file yields an empty list, not an error.
	ListLessons(ctx context.Context) ([]LessonSummary, error)

	// GetLesson loads one lesson document by its authored ID.
	// Returns ErrLessonNotFound if no such document exists.
	GetLesson(ctx context.Context, lessonID string) (*LessonDoc, error)

	// GetExercise finds one exercise inside a lesson document.
	// Returns ErrLessonNotFound if the lesson does not exist and
	// ErrExerciseNotFound if the lesson has no such exercise.
	GetExercise(ctx context.Context, lessonID, exerciseID string) (*ExerciseDoc, error)
}
