package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/curricula-api/internal/api/shared"
	"github.com/phrazzld/curricula-api/internal/service/exercise"
)

// ExerciseHandler handles exercise answer submission requests.
type ExerciseHandler struct {
	exerciseService exercise.Service
	validator       *validator.Validate
}

// NewExerciseHandler creates a new ExerciseHandler with the given
// dependencies.
func NewExerciseHandler(exerciseService exercise.Service) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		validator:       validator.New(),
	}
}

// SubmitAnswer handles POST /exercises/{id}/attempts. The answer is graded,
// recorded as an immutable attempt, and the user's course progress is
// refreshed. A wrong answer is still a 201: the attempt was created.
func (h *ExerciseHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, exerciseID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.exerciseService.SubmitAnswer(
		r.Context(),
		userID,
		exerciseID,
		req.Answer,
		req.TimeSpentSeconds,
	)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitAnswerResponse{
		Attempt:     result.Attempt,
		Progress:    result.Progress,
		Explanation: result.Explanation,
	})
}
