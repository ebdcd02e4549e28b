package progress

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/store"
)

// mockCourseStore is a testify mock for store.CourseStore.
type mockCourseStore struct {
	mock.Mock
}

func (m *mockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if course, ok := args.Get(0).(*domain.Course); ok {
		return course, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseStore) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if courses, ok := args.Get(0).([]*domain.Course); ok {
		return courses, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCourseStore) Update(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCourseStore) WithTx(tx *sql.Tx) store.CourseStore { return m }

// mockLessonStore is a testify mock for store.LessonStore.
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

// mockProgressStore is a testify mock for store.ProgressStore.
type mockProgressStore struct {
	mock.Mock
}

func (m *mockProgressStore) Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.ProgressSnapshot, error) {
	args := m.Called(ctx, userID, courseID)
	if snapshot, ok := args.Get(0).(*domain.ProgressSnapshot); ok {
		return snapshot, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressSnapshot, error) {
	args := m.Called(ctx, userID)
	if snapshots, ok := args.Get(0).([]*domain.ProgressSnapshot); ok {
		return snapshots, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressStore) Upsert(ctx context.Context, snapshot *domain.ProgressSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *mockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore { return m }
