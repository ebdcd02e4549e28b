package progress

import "errors"

// Progress service errors
var (
	// ErrNoLessonsAvailable indicates a course has no published lessons to
	// resume or start from.
	ErrNoLessonsAvailable = errors.New("course has no published lessons")

	// ErrLessonNotInCourse indicates the lesson used as an advancement
	// starting point does not exist or belongs to a different course.
	ErrLessonNotInCourse = errors.New("lesson does not belong to course")

	// ErrCourseCompleted indicates no published lesson follows the current
	// one, so there is nothing to advance to.
	ErrCourseCompleted = errors.New("no further lessons in course")
)
