package exercise

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/store"
)

// mockExerciseStore is a testify mock for store.ExerciseStore.
type mockExerciseStore struct {
	mock.Mock
}

func (m *mockExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	return m.Called(ctx, exercise).Error(0)
}

func (m *mockExerciseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	args := m.Called(ctx, id)
	if exercise, ok := args.Get(0).(*domain.Exercise); ok {
		return exercise, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExerciseStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]*domain.Exercise, error) {
	args := m.Called(ctx, lessonID)
	if exercises, ok := args.Get(0).([]*domain.Exercise); ok {
		return exercises, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExerciseStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore { return m }

// mockLessonStore is a testify mock for the subset of store.LessonStore the
// submission flow touches.
type mockLessonStore struct {
	mock.Mock
}

func (m *mockLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *mockLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if lesson, ok := args.Get(0).(*domain.Lesson); ok {
		return lesson, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLessonStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	args := m.Called(ctx, courseID)
	if lessons, ok := args.Get(0).([]*domain.Lesson); ok {
		return lessons, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLessonStore) GetFirstPublished(ctx context.Context, courseID uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, courseID)
	if lesson, ok := args.Get(0).(*domain.Lesson); ok {
		return lesson, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLessonStore) GetNextPublished(ctx context.Context, courseID uuid.UUID, afterOrderIndex int) (*domain.Lesson, error) {
	args := m.Called(ctx, courseID, afterOrderIndex)
	if lesson, ok := args.Get(0).(*domain.Lesson); ok {
		return lesson, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLessonStore) CountPublished(ctx context.Context, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}

func (m *mockLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *mockLessonStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLessonStore) WithTx(tx *sql.Tx) store.LessonStore { return m }

// mockAttemptStore is a testify mock for store.AttemptStore.
type mockAttemptStore struct {
	mock.Mock
}

func (m *mockAttemptStore) Create(ctx context.Context, attempt *domain.ExerciseAttempt) error {
	return m.Called(ctx, attempt).Error(0)
}

func (m *mockAttemptStore) CountByUserAndExercise(ctx context.Context, userID, exerciseID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID, exerciseID)
	return args.Int(0), args.Error(1)
}

func (m *mockAttemptStore) ListCorrectByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) ([]*store.CourseAttempt, error) {
	args := m.Called(ctx, userID, courseID)
	if attempts, ok := args.Get(0).([]*store.CourseAttempt); ok {
		return attempts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore { return m }

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
