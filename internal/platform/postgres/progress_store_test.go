package postgres

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/store"
)

// TestPostgresProgressStore_Upsert exercises the conditional-write primitive:
// insert on first save, in-place update on conflict, and COALESCE semantics
// for the current lesson pointer.
func TestPostgresProgressStore_Upsert(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db := getTestDB(t)
	ctx := context.Background()

	withRollbackTx(t, db, func(tx *sql.Tx) {
		progressStore := NewPostgresProgressStore(tx, nil)

		user := createTestUser(ctx, t, tx)
		course := createTestCourse(ctx, t, tx)
		lesson := createTestLesson(ctx, t, tx, course.ID, "Greetings", 0, true)
		nextLesson := createTestLesson(ctx, t, tx, course.ID, "Numbers", 1, true)

		// First save inserts the row.
		snapshot, err := domain.NewProgressSnapshot(user.ID, course.ID)
		require.NoError(t, err)
		snapshot.CurrentLessonID = &lesson.ID
		snapshot.LessonsCompleted = 1
		snapshot.ExercisesCompleted = 2
		snapshot.TotalPoints = 20
		snapshot.CompletionPercentage = 50.0

		require.NoError(t, progressStore.Upsert(ctx, snapshot))

		stored, err := progressStore.Get(ctx, user.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, snapshot.ID, stored.ID)
		require.NotNil(t, stored.CurrentLessonID)
		assert.Equal(t, lesson.ID, *stored.CurrentLessonID)
		assert.Equal(t, 2, stored.ExercisesCompleted)

		// A second save with a nil lesson pointer updates the counters but
		// keeps the stored pointer and the original row identity.
		refresh, err := domain.NewProgressSnapshot(user.ID, course.ID)
		require.NoError(t, err)
		refresh.LessonsCompleted = 2
		refresh.ExercisesCompleted = 4
		refresh.TotalPoints = 40
		refresh.CompletionPercentage = 100.0

		require.NoError(t, progressStore.Upsert(ctx, refresh))

		assert.Equal(t, snapshot.ID, refresh.ID, "conflict update must keep the original row identity")
		require.NotNil(t, refresh.CurrentLessonID)
		assert.Equal(t, lesson.ID, *refresh.CurrentLessonID, "nil pointer must not clear the stored lesson")
		assert.Equal(t, 4, refresh.ExercisesCompleted)
		assert.Equal(t, 100.0, refresh.CompletionPercentage)

		// A save carrying a pointer replaces the stored one.
		advance, err := domain.NewProgressSnapshot(user.ID, course.ID)
		require.NoError(t, err)
		advance.CurrentLessonID = &nextLesson.ID
		advance.CompletionPercentage = 100.0

		require.NoError(t, progressStore.Upsert(ctx, advance))
		require.NotNil(t, advance.CurrentLessonID)
		assert.Equal(t, nextLesson.ID, *advance.CurrentLessonID)

		// Exactly one row exists for the pair throughout.
		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM progress_snapshots WHERE user_id = $1 AND course_id = $2`,
			user.ID, course.ID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

// TestPostgresProgressStore_UpsertConcurrent hammers Upsert for one
// (user, course) pair from several goroutines on separate connections and
// asserts the unique constraint collapses them into a single row.
func TestPostgresProgressStore_UpsertConcurrent(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db := getTestDB(t)
	ctx := context.Background()

	// Concurrent writers need committed fixtures on independent
	// connections, so this test writes real rows and removes them itself.
	user := createTestUser(ctx, t, db)
	course := createTestCourse(ctx, t, db)
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM progress_snapshots WHERE user_id = $1`, user.ID)
		_, _ = db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, course.ID)
		_, _ = db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	})

	progressStore := NewPostgresProgressStore(db, nil)

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot, err := domain.NewProgressSnapshot(user.ID, course.ID)
			if err != nil {
				errs[i] = err
				return
			}
			snapshot.ExercisesCompleted = i + 1
			errs[i] = progressStore.Upsert(context.Background(), snapshot)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "writer %d failed", i)
	}

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM progress_snapshots WHERE user_id = $1 AND course_id = $2`,
		user.ID, course.ID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "concurrent upserts must collapse into one snapshot row")
}

// TestPostgresProgressStore_Get covers the not-found mapping and ListByUser
// ordering by recency.
func TestPostgresProgressStore_Get(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db := getTestDB(t)
	ctx := context.Background()

	withRollbackTx(t, db, func(tx *sql.Tx) {
		progressStore := NewPostgresProgressStore(tx, nil)

		user := createTestUser(ctx, t, tx)
		course := createTestCourse(ctx, t, tx)

		_, err := progressStore.Get(ctx, user.ID, course.ID)
		assert.ErrorIs(t, err, store.ErrProgressNotFound)

		snapshot, err := domain.NewProgressSnapshot(user.ID, course.ID)
		require.NoError(t, err)
		require.NoError(t, progressStore.Upsert(ctx, snapshot))

		snapshots, err := progressStore.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, course.ID, snapshots[0].CourseID)
	})
}
