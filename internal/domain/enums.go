package domain

// Difficulty represents the difficulty level of a course or exercise.
type Difficulty string

// Recognized difficulty levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid reports whether the difficulty is one of the recognized levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ExerciseType represents the kind of exercise and determines how a
// submitted answer is graded.
type ExerciseType string

// Recognized exercise types.
const (
	// ExerciseTypeMultipleChoice is graded by comparing the submitted answer,
	// parsed as an integer index, against the stored correct option index.
	ExerciseTypeMultipleChoice ExerciseType = "multiple_choice"

	// ExerciseTypeCodeCompletion is graded by case-insensitive,
	// whitespace-trimmed string equality.
	ExerciseTypeCodeCompletion ExerciseType = "code_completion"

	// ExerciseTypeFreeForm is graded by case-insensitive,
	// whitespace-trimmed string equality.
	ExerciseTypeFreeForm ExerciseType = "free_form"

	// ExerciseTypeTrueFalse is graded by case-insensitive,
	// whitespace-trimmed string equality.
	ExerciseTypeTrueFalse ExerciseType = "true_false"
)

// IsValid reports whether the exercise type is one of the recognized types.
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseTypeMultipleChoice,
		ExerciseTypeCodeCompletion,
		ExerciseTypeFreeForm,
		ExerciseTypeTrueFalse:
		return true
	}
	return false
}
