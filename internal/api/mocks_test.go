package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/curricula-api/internal/content"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// mockProgressService is a testify mock for progress.Service.
type mockProgressService struct {
	mock.Mock
}

func (m *mockProgressService) SaveProgress(ctx context.Context, userID, courseID uuid.UUID, lessonID *uuid.UUID) (*domain.ProgressSnapshot, error) {
	args := m.Called(ctx, userID, courseID, lessonID)
	if snapshot, ok := args.Get(0).(*domain.ProgressSnapshot); ok {
		return snapshot, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*domain.ProgressSnapshot, error) {
	args := m.Called(ctx, userID, courseID)
	if snapshot, ok := args.Get(0).(*domain.ProgressSnapshot); ok {
		return snapshot, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressSnapshot, error) {
	args := m.Called(ctx, userID)
	if snapshots, ok := args.Get(0).([]*domain.ProgressSnapshot); ok {
		return snapshots, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) GetCurrentLesson(ctx context.Context, userID, courseID uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, userID, courseID)
	if lesson, ok := args.Get(0).(*domain.Lesson); ok {
		return lesson, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) AdvanceToNextLesson(ctx context.Context, userID, courseID, currentLessonID uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, userID, courseID, currentLessonID)
	if lesson, ok := args.Get(0).(*domain.Lesson); ok {
		return lesson, args.Error(1)
	}
	return nil, args.Error(1)
}

// stubContentStore serves canned content documents for handler tests.
type stubContentStore struct {
	lessons map[string]*content.LessonDoc
	index   []content.LessonSummary
	err     error
}

func (s *stubContentStore) ListLessons(ctx context.Context) ([]content.LessonSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.index, nil
}

func (s *stubContentStore) GetLesson(ctx context.Context, lessonID string) (*content.LessonDoc, error) {
	if s.err != nil {
		return nil, s.err
	}
	lesson, ok := s.lessons[lessonID]
	if !ok {
		return nil, content.ErrLessonNotFound
	}
	return lesson, nil
}

func (s *stubContentStore) GetExercise(ctx context.Context, lessonID, exerciseID string) (*content.ExerciseDoc, error) {
	lesson, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	for i := range lesson.Exercises {
		if lesson.Exercises[i].ID == exerciseID {
			return &lesson.Exercises[i], nil
		}
	}
	return nil, content.ErrExerciseNotFound
}
