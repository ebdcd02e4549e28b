package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Course-specific validation errors
var (
	ErrCourseIDEmpty    = errors.New("course ID cannot be empty")
	ErrCourseTitleEmpty = errors.New("course title cannot be empty")
)

// Course is an ordered collection of lessons. Only published, non-deleted
// courses are visible to progress computations.
type Course struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	IsPublished bool       `json:"is_published"`
	OrderIndex  int        `json:"order_index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// NewCourse creates a new unpublished Course with the given title,
// description, and difficulty. Returns an error if validation fails.
func NewCourse(title, description string, difficulty Difficulty) (*Course, error) {
	course := &Course{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCourseIDEmpty
	}

	if strings.TrimSpace(c.Title) == "" {
		return ErrCourseTitleEmpty
	}

	if !c.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	return nil
}

// SoftDelete marks the course deleted and unpublishes it, hiding it from
// progress computations while keeping snapshots that reference it valid.
func (c *Course) SoftDelete(now time.Time) {
	t := now.UTC()
	c.DeletedAt = &t
	c.IsPublished = false
	c.UpdatedAt = t
}
