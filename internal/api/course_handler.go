package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/curricula-api/internal/api/shared"
	"github.com/phrazzld/curricula-api/internal/service/progress"
)

// CourseHandler handles course progress and lesson sequencing requests.
type CourseHandler struct {
	progressService progress.Service
	validator       *validator.Validate
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(progressService progress.Service) *CourseHandler {
	return &CourseHandler{
		progressService: progressService,
		validator:       validator.New(),
	}
}

// GetCurrentLesson handles GET /courses/{id}/current-lesson. It returns the
// lesson the authenticated user should resume at: the saved pointer when it
// is still valid, the course's first published lesson otherwise.
func (h *CourseHandler) GetCurrentLesson(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	lesson, err := h.progressService.GetCurrentLesson(r.Context(), userID, courseID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// AdvanceLesson handles POST /courses/{id}/advance. It moves the user to
// the next published lesson after the one named in the request and saves
// progress pointing at it. When the course is finished the response carries
// completed=true and a null next lesson.
func (h *CourseHandler) AdvanceLesson(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AdvanceLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	next, err := h.progressService.AdvanceToNextLesson(r.Context(), userID, courseID, req.CurrentLessonID)
	if err != nil {
		if errors.Is(err, progress.ErrCourseCompleted) {
			shared.RespondWithJSON(w, r, http.StatusOK, AdvanceLessonResponse{
				Completed:  true,
				NextLesson: nil,
			})
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AdvanceLessonResponse{
		Completed:  false,
		NextLesson: next,
	})
}

// SaveProgress handles POST /courses/{id}/progress. It recomputes the
// snapshot from the attempt history; the optional lesson_id moves the
// current-lesson pointer.
func (h *CourseHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	// An empty body is a bare "recompute" request.
	var req SaveProgressRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	snapshot, err := h.progressService.SaveProgress(r.Context(), userID, courseID, req.LessonID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// GetProgress handles GET /courses/{id}/progress.
func (h *CourseHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, courseID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	snapshot, err := h.progressService.GetProgress(r.Context(), userID, courseID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// ListProgress handles GET /progress. It returns every course snapshot for
// the authenticated user, most recently active first.
func (h *CourseHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	snapshots, err := h.progressService.ListProgress(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshots)
}
