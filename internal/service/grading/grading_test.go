package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/curricula-api/internal/domain"
)

func TestIsCorrect_MultipleChoice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		correctAnswer string
		answer        string
		want          bool
	}{
		{"exact index match", "2", "2", true},
		{"whitespace around index", "2", "  2  ", true},
		{"leading zero still parses", "2", "02", true},
		{"wrong index", "2", "1", false},
		{"non-numeric submission is incorrect", "2", "banana", false},
		{"empty submission is incorrect", "2", "", false},
		{"float submission is incorrect", "2", "2.0", false},
		{"negative index compares numerically", "-1", "-1", true},
		{"malformed stored answer is incorrect", "two", "2", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsCorrect(domain.ExerciseTypeMultipleChoice, tt.correctAnswer, tt.answer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsCorrect_TextTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		exerciseType  domain.ExerciseType
		correctAnswer string
		answer        string
		want          bool
	}{
		{"exact match", domain.ExerciseTypeFreeForm, "hola", "hola", true},
		{"case-insensitive", domain.ExerciseTypeFreeForm, "Hola", "hOLA", true},
		{"trims whitespace", domain.ExerciseTypeFreeForm, "hola", "  hola\n", true},
		{"wrong answer", domain.ExerciseTypeFreeForm, "hola", "adios", false},
		{"true/false case-insensitive", domain.ExerciseTypeTrueFalse, "true", "TRUE", true},
		{"true/false wrong", domain.ExerciseTypeTrueFalse, "true", "false", false},
		{"code completion trims", domain.ExerciseTypeCodeCompletion, "return nil", " return nil ", true},
		{"internal whitespace matters", domain.ExerciseTypeCodeCompletion, "return nil", "return  nil", false},
		{"empty submission vs empty answer", domain.ExerciseTypeFreeForm, "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsCorrect(tt.exerciseType, tt.correctAnswer, tt.answer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrade(t *testing.T) {
	t.Parallel()

	newExercise := func(points int) *domain.Exercise {
		ex, err := domain.NewExercise(uuid.New(), "Greeting", "How do you say hello?", domain.ExerciseTypeFreeForm, "hola")
		require.NoError(t, err)
		ex.Points = points
		return ex
	}

	t.Run("correct answer earns the exercise's points", func(t *testing.T) {
		t.Parallel()
		result := Grade(newExercise(25), "Hola")
		assert.True(t, result.IsCorrect)
		assert.Equal(t, 25, result.PointsEarned)
	})

	t.Run("incorrect answer earns zero points", func(t *testing.T) {
		t.Parallel()
		result := Grade(newExercise(25), "bonjour")
		assert.False(t, result.IsCorrect)
		assert.Equal(t, 0, result.PointsEarned)
	})

	t.Run("grading is deterministic", func(t *testing.T) {
		t.Parallel()
		ex := newExercise(10)
		first := Grade(ex, "hola")
		second := Grade(ex, "hola")
		assert.Equal(t, first, second)
	})
}
