package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/curricula-api/internal/platform/logger"
)

// FileStore implements Store over a content directory on disk laid out as:
//
//	<dir>/curriculum.json
//	<dir>/lessons/<id>.json
//
// Lesson IDs are used as file names; IDs containing path separators are
// rejected before touching the filesystem.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates a content store rooted at dir. If logger is nil, a
// default logger will be used.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if dir == "" {
		panic("content dir cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FileStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "content_store")),
	}
}

// Ensure FileStore implements Store interface
var _ Store = (*FileStore)(nil)

// ListLessons implements Store.ListLessons
func (s *FileStore) ListLessons(ctx context.Context) ([]LessonSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	path := filepath.Join(s.dir, "curriculum.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("curriculum index missing", slog.String("path", path))
			return []LessonSummary{}, nil
		}
		log.Error("failed to read curriculum index",
			slog.String("error", err.Error()),
			slog.String("path", path))
		return nil, fmt.Errorf("failed to read curriculum index: %w", err)
	}

	var curriculum Curriculum
	if err := json.Unmarshal(data, &curriculum); err != nil {
		log.Error("failed to decode curriculum index",
			slog.String("error", err.Error()),
			slog.String("path", path))
		return nil, fmt.Errorf("failed to decode curriculum index: %w", err)
	}

	if curriculum.Lessons == nil {
		return []LessonSummary{}, nil
	}
	return curriculum.Lessons, nil
}

// GetLesson implements Store.GetLesson
func (s *FileStore) GetLesson(ctx context.Context, lessonID string) (*LessonDoc, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !validContentID(lessonID) {
		return nil, ErrLessonNotFound
	}

	path := filepath.Join(s.dir, "lessons", lessonID+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("lesson document not found", slog.String("lesson_id", lessonID))
			return nil, ErrLessonNotFound
		}
		log.Error("failed to read lesson document",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lessonID))
		return nil, fmt.Errorf("failed to read lesson document: %w", err)
	}

	var lesson LessonDoc
	if err := json.Unmarshal(data, &lesson); err != nil {
		log.Error("failed to decode lesson document",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lessonID))
		return nil, fmt.Errorf("failed to decode lesson document: %w", err)
	}

	return &lesson, nil
}

// GetExercise implements Store.GetExercise
func (s *FileStore) GetExercise(ctx context.Context, lessonID, exerciseID string) (*ExerciseDoc, error) {
	lesson, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	for i := range lesson.Exercises {
		if lesson.Exercises[i].ID == exerciseID {
			return &lesson.Exercises[i], nil
		}
	}

	return nil, ErrExerciseNotFound
}

// validContentID rejects IDs that could escape the lessons directory.
func validContentID(id string) bool {
	return id != "" && id == filepath.Base(id) && id != "." && id != ".."
}
