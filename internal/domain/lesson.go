package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lesson-specific validation errors
var (
	ErrLessonIDEmpty       = errors.New("lesson ID cannot be empty")
	ErrLessonCourseIDEmpty = errors.New("lesson course ID cannot be empty")
	ErrLessonTitleEmpty    = errors.New("lesson title cannot be empty")
)

// Lesson is a unit of course content. OrderIndex defines the lesson's
// position within its course; ties are broken by ascending lesson ID so the
// next-lesson relation stays deterministic.
type Lesson struct {
	ID              uuid.UUID  `json:"id"`
	CourseID        uuid.UUID  `json:"course_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Content         string     `json:"content,omitempty"`
	OrderIndex      int        `json:"order_index"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	IsPublished     bool       `json:"is_published"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}

// NewLesson creates a new unpublished Lesson for the given course at the
// given position. Returns an error if validation fails.
func NewLesson(courseID uuid.UUID, title string, orderIndex int) (*Lesson, error) {
	lesson := &Lesson{
		ID:         uuid.New(),
		CourseID:   courseID,
		Title:      title,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrLessonIDEmpty
	}

	if l.CourseID == uuid.Nil {
		return ErrLessonCourseIDEmpty
	}

	if strings.TrimSpace(l.Title) == "" {
		return ErrLessonTitleEmpty
	}

	return nil
}

// SoftDelete marks the lesson deleted and unpublishes it.
func (l *Lesson) SoftDelete(now time.Time) {
	t := now.UTC()
	l.DeletedAt = &t
	l.IsPublished = false
	l.UpdatedAt = t
}
