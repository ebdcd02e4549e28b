package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/store"
)

// checkIntegrationTestEnvironment reports whether a test database is
// available, by checking DATABASE_URL.
func checkIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// getTestDB opens a connection pool to the test database and verifies it.
func getTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	require.NotEmpty(t, dbURL, "DATABASE_URL environment variable not set")

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// withRollbackTx executes a test function inside a transaction and rolls it
// back afterward so tests stay isolated from each other.
func withRollbackTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Error rolling back transaction: %v", err)
		}
	}()

	fn(tx)
}

// createTestUser inserts a user fixture and returns it.
func createTestUser(ctx context.Context, t *testing.T, db store.DBTX) *domain.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user, err := domain.NewUser(
		fmt.Sprintf("learner-%s@example.com", suffix),
		"learner-"+suffix,
		"correct-horse-battery",
	)
	require.NoError(t, err, "Failed to build test user")
	user.HashedPassword = "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef"

	userStore := NewPostgresUserStore(db, nil)
	require.NoError(t, userStore.Create(ctx, user), "Failed to insert test user")
	return user
}

// createTestCourse inserts a published course fixture and returns it.
func createTestCourse(ctx context.Context, t *testing.T, db store.DBTX) *domain.Course {
	t.Helper()

	course, err := domain.NewCourse("Spanish Basics", "Fixture course", domain.DifficultyBeginner)
	require.NoError(t, err, "Failed to build test course")
	course.IsPublished = true

	courseStore := NewPostgresCourseStore(db, nil)
	require.NoError(t, courseStore.Create(ctx, course), "Failed to insert test course")
	return course
}

// createTestLesson inserts a lesson fixture for the course and returns it.
func createTestLesson(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	courseID uuid.UUID,
	title string,
	orderIndex int,
	published bool,
) *domain.Lesson {
	t.Helper()

	lesson, err := domain.NewLesson(courseID, title, orderIndex)
	require.NoError(t, err, "Failed to build test lesson")
	lesson.IsPublished = published

	lessonStore := NewPostgresLessonStore(db, nil)
	require.NoError(t, lessonStore.Create(ctx, lesson), "Failed to insert test lesson")
	return lesson
}

// createTestExercise inserts an exercise fixture for the lesson and returns it.
func createTestExercise(ctx context.Context, t *testing.T, db store.DBTX, lessonID uuid.UUID) *domain.Exercise {
	t.Helper()

	ex, err := domain.NewExercise(lessonID, "Greeting", "How do you say hello?", domain.ExerciseTypeFreeForm, "hola")
	require.NoError(t, err, "Failed to build test exercise")

	exerciseStore := NewPostgresExerciseStore(db, nil)
	require.NoError(t, exerciseStore.Create(ctx, ex), "Failed to insert test exercise")
	return ex
}
