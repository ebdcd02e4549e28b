// Package grading evaluates submitted exercise answers against stored
// correct answers. It is pure: no storage, no clock, no context. The rest of
// the system decides what to do with a verdict; this package only produces
// one.
package grading

import (
	"strconv"
	"strings"

	"github.com/phrazzld/curricula-api/internal/domain"
)

// Result is the outcome of grading one submission.
type Result struct {
	// IsCorrect reports whether the submission matched the stored answer.
	IsCorrect bool

	// PointsEarned is the exercise's point value for a correct submission
	// and zero otherwise.
	PointsEarned int
}

// Grade evaluates a submitted answer against the exercise's stored correct
// answer and point value. Malformed submissions are never an error: they
// grade as incorrect.
func Grade(exercise *domain.Exercise, answer string) Result {
	correct := IsCorrect(exercise.Type, exercise.CorrectAnswer, answer)

	points := 0
	if correct {
		points = exercise.Points
	}

	return Result{
		IsCorrect:    correct,
		PointsEarned: points,
	}
}

// IsCorrect reports whether the submitted answer matches the stored correct
// answer under the grading rule for the exercise type.
//
// Multiple-choice answers are option indexes: both sides are parsed as
// integers and compared numerically, so "2", " 2 " and "02" all select
// option 2. A submission that does not parse as an integer is simply
// incorrect. Every other type compares by case-insensitive,
// whitespace-trimmed string equality.
func IsCorrect(exerciseType domain.ExerciseType, correctAnswer, answer string) bool {
	if exerciseType == domain.ExerciseTypeMultipleChoice {
		submitted, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return false
		}
		expected, err := strconv.Atoi(strings.TrimSpace(correctAnswer))
		if err != nil {
			return false
		}
		return submitted == expected
	}

	return strings.EqualFold(
		strings.TrimSpace(answer),
		strings.TrimSpace(correctAnswer),
	)
}
