package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// ProgressStore defines the interface for progress snapshot persistence.
//
// The store enforces at most one snapshot per (user, course) pair via a
// unique constraint. Upsert is the only write path used during normal
// operation; snapshots are never deleted.
type ProgressStore interface {
	// Get retrieves the snapshot for a (user, course) pair.
	// Returns ErrProgressNotFound if no snapshot exists yet.
	Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.ProgressSnapshot, error)

	// ListByUser returns all snapshots for a user, most recently active
	// first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ProgressSnapshot, error)

	// Upsert atomically inserts the snapshot or, if a row already exists for
	// its (user, course) pair, updates that row in place. Implementations
	// must use a storage-level conditional write (e.g. INSERT ... ON
	// CONFLICT DO UPDATE) so that concurrent upserts for the same pair can
	// never produce duplicate rows. The snapshot is updated with the
	// persisted row's identity and timestamps.
	Upsert(ctx context.Context, snapshot *domain.ProgressSnapshot) error

	// WithTx returns a new ProgressStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
