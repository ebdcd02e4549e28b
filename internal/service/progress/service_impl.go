package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/platform/logger"
	"github.com/phrazzld/curricula-api/internal/store"
)

// serviceImpl implements the Service interface over the relational stores.
type serviceImpl struct {
	courseStore   store.CourseStore
	lessonStore   store.LessonStore
	attemptStore  store.AttemptStore
	progressStore store.ProgressStore
	logger        *slog.Logger
}

// NewService creates a new progress service with the given dependencies.
// Panics if any store dependency is nil.
func NewService(
	courseStore store.CourseStore,
	lessonStore store.LessonStore,
	attemptStore store.AttemptStore,
	progressStore store.ProgressStore,
	logger *slog.Logger,
) Service {
	if courseStore == nil {
		panic("courseStore cannot be nil")
	}
	if lessonStore == nil {
		panic("lessonStore cannot be nil")
	}
	if attemptStore == nil {
		panic("attemptStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		courseStore:   courseStore,
		lessonStore:   lessonStore,
		attemptStore:  attemptStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "progress_service")),
	}
}

// Ensure serviceImpl implements Service interface
var _ Service = (*serviceImpl)(nil)

// SaveProgress implements Service.SaveProgress
func (s *serviceImpl) SaveProgress(
	ctx context.Context,
	userID, courseID uuid.UUID,
	lessonID *uuid.UUID,
) (*domain.ProgressSnapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	attempts, err := s.attemptStore.ListCorrectByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt history: %w", err)
	}

	totalLessons, err := s.lessonStore.CountPublished(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count published lessons: %w", err)
	}

	snapshot, err := domain.NewProgressSnapshot(userID, courseID)
	if err != nil {
		return nil, err
	}
	snapshot.CurrentLessonID = lessonID
	aggregate(snapshot, attempts, totalLessons)
	snapshot.LastActivityAt = time.Now().UTC()

	if err := s.progressStore.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to upsert progress snapshot: %w", err)
	}

	log.Debug("progress saved",
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()),
		slog.Int("lessons_completed", snapshot.LessonsCompleted),
		slog.Int("exercises_completed", snapshot.ExercisesCompleted),
		slog.Float64("completion_percentage", snapshot.CompletionPercentage))

	return snapshot, nil
}

// aggregate recomputes the snapshot's counters from the correct-attempt
// history.
//
// ExercisesCompleted counts correct attempts, not distinct exercises, so
// re-answering an exercise correctly raises the count again.
// LessonsCompleted counts distinct lessons touched by at least one correct
// attempt. The percentage is capped at 100: history can reference lessons
// that have since been unpublished or deleted, shrinking the denominator
// below the numerator.
func aggregate(snapshot *domain.ProgressSnapshot, attempts []*store.CourseAttempt, totalLessons int) {
	completedLessons := make(map[uuid.UUID]struct{})
	totalPoints := 0
	for _, attempt := range attempts {
		completedLessons[attempt.LessonID] = struct{}{}
		totalPoints += attempt.PointsEarned
	}

	snapshot.ExercisesCompleted = len(attempts)
	snapshot.TotalPoints = totalPoints
	snapshot.LessonsCompleted = len(completedLessons)

	if totalLessons > 0 {
		pct := float64(snapshot.LessonsCompleted) / float64(totalLessons) * 100
		if pct > 100 {
			pct = 100
		}
		snapshot.CompletionPercentage = pct
	} else {
		snapshot.CompletionPercentage = 0.0
	}
}

// GetProgress implements Service.GetProgress
func (s *serviceImpl) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*domain.ProgressSnapshot, error) {
	return s.progressStore.Get(ctx, userID, courseID)
}

// ListProgress implements Service.ListProgress
func (s *serviceImpl) ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressSnapshot, error) {
	return s.progressStore.ListByUser(ctx, userID)
}

// GetCurrentLesson implements Service.GetCurrentLesson
func (s *serviceImpl) GetCurrentLesson(ctx context.Context, userID, courseID uuid.UUID) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	snapshot, err := s.progressStore.Get(ctx, userID, courseID)
	if err != nil && !errors.Is(err, store.ErrProgressNotFound) {
		return nil, fmt.Errorf("failed to load progress snapshot: %w", err)
	}

	if snapshot != nil && snapshot.CurrentLessonID != nil {
		lesson, err := s.lessonStore.GetByID(ctx, *snapshot.CurrentLessonID)
		switch {
		case err == nil && lesson.CourseID == courseID:
			return lesson, nil
		case err != nil && !errors.Is(err, store.ErrLessonNotFound):
			return nil, fmt.Errorf("failed to load current lesson: %w", err)
		default:
			// Pointer references a deleted lesson or one from another
			// course; resume from the start instead.
			log.Warn("stale current lesson pointer, falling back to first lesson",
				slog.String("user_id", userID.String()),
				slog.String("course_id", courseID.String()),
				slog.String("current_lesson_id", snapshot.CurrentLessonID.String()))
		}
	}

	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	lesson, err := s.lessonStore.GetFirstPublished(ctx, courseID)
	if err != nil {
		if errors.Is(err, store.ErrLessonNotFound) {
			return nil, ErrNoLessonsAvailable
		}
		return nil, fmt.Errorf("failed to load first lesson: %w", err)
	}

	return lesson, nil
}

// AdvanceToNextLesson implements Service.AdvanceToNextLesson
func (s *serviceImpl) AdvanceToNextLesson(
	ctx context.Context,
	userID, courseID, currentLessonID uuid.UUID,
) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.lessonStore.GetByID(ctx, currentLessonID)
	if err != nil {
		if errors.Is(err, store.ErrLessonNotFound) {
			return nil, ErrLessonNotInCourse
		}
		return nil, fmt.Errorf("failed to load current lesson: %w", err)
	}
	if current.CourseID != courseID {
		return nil, ErrLessonNotInCourse
	}

	next, err := s.lessonStore.GetNextPublished(ctx, courseID, current.OrderIndex)
	if err != nil {
		if errors.Is(err, store.ErrLessonNotFound) {
			return nil, ErrCourseCompleted
		}
		return nil, fmt.Errorf("failed to load next lesson: %w", err)
	}

	if _, err := s.SaveProgress(ctx, userID, courseID, &next.ID); err != nil {
		return nil, fmt.Errorf("failed to save progress after advancing: %w", err)
	}

	log.Info("advanced to next lesson",
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()),
		slog.String("from_lesson_id", currentLessonID.String()),
		slog.String("to_lesson_id", next.ID.String()))

	return next, nil
}
