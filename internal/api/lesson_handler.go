package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/curricula-api/internal/api/shared"
	"github.com/phrazzld/curricula-api/internal/content"
)

// LessonHandler serves authored lesson content and answer validation over
// it. Content lessons use authored string IDs, not catalog UUIDs.
type LessonHandler struct {
	contentStore content.Store
	validator    *validator.Validate
}

// NewLessonHandler creates a new LessonHandler with the given dependencies.
func NewLessonHandler(contentStore content.Store) *LessonHandler {
	return &LessonHandler{
		contentStore: contentStore,
		validator:    validator.New(),
	}
}

// ListLessons handles GET /lessons. It returns the curriculum index.
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.contentStore.ListLessons(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LessonListResponse{Lessons: lessons})
}

// GetLesson handles GET /lessons/{lessonID}.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")

	lesson, err := h.contentStore.GetLesson(r.Context(), lessonID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// GetExercise handles GET /lessons/{lessonID}/exercises/{exerciseID}. The
// correct answer is stripped before the exercise goes over the wire.
func (h *LessonHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	exerciseID := chi.URLParam(r, "exerciseID")

	ex, err := h.contentStore.GetExercise(r.Context(), lessonID, exerciseID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	public := *ex
	public.CorrectAnswer = nil
	shared.RespondWithJSON(w, r, http.StatusOK, public)
}

// ValidateAnswer handles POST /lessons/{lessonID}/exercises/{exerciseID}/validate.
// It grades the submitted answer against the authored exercise without
// recording an attempt; learners use it to check themselves while browsing
// content.
func (h *LessonHandler) ValidateAnswer(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	exerciseID := chi.URLParam(r, "exerciseID")

	var req ValidateAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ex, err := h.contentStore.GetExercise(r.Context(), lessonID, exerciseID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, content.Validate(ex, req.Answer))
}
