package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/curricula-api/internal/store"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows becomes not found", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation becomes duplicate", pgError("23505", "users_email_key"), store.ErrDuplicate},
		{"foreign key violation becomes invalid entity", pgError("23503", "exercises_lesson_id_fkey"), store.ErrInvalidEntity},
		{"check violation becomes invalid entity", pgError("23514", "exercises_points_check"), store.ErrInvalidEntity},
		{"not null violation becomes invalid entity", pgError("23502", ""), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		err := errors.New("connection refused")
		assert.Equal(t, err, MapError(err))
	})

	t.Run("wrapped pg errors are still recognized", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("insert failed: %w", pgError("23505", "users_email_key"))
		assert.ErrorIs(t, MapError(err), store.ErrDuplicate)
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	constraintErrors := map[string]error{
		"users_email_key":    store.ErrEmailExists,
		"users_username_key": store.ErrUsernameExists,
	}

	t.Run("known constraint maps to its specific error", func(t *testing.T) {
		t.Parallel()
		err := mapUniqueViolation(pgError("23505", "users_email_key"), constraintErrors)
		assert.ErrorIs(t, err, store.ErrEmailExists)

		err = mapUniqueViolation(pgError("23505", "users_username_key"), constraintErrors)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("unknown constraint falls back to duplicate", func(t *testing.T) {
		t.Parallel()
		err := mapUniqueViolation(pgError("23505", "progress_snapshots_user_course_key"), constraintErrors)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.NotErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("non-unique errors go through the generic mapping", func(t *testing.T) {
		t.Parallel()
		err := mapUniqueViolation(sql.ErrNoRows, constraintErrors)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError("23505", "")))
	assert.False(t, IsUniqueViolation(pgError("23503", "")))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(pgError("23503", "")))
	assert.False(t, IsForeignKeyViolation(pgError("23505", "")))
	assert.False(t, IsForeignKeyViolation(nil))
}
