package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password.
	// Returns ErrEmailExists or ErrUsernameExists on unique violations.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist or is soft-deleted.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details. The caller must provide a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// SoftDelete marks a user deleted and deactivates the account. The row
	// is preserved so attempt history referencing it stays valid.
	// Returns ErrUserNotFound if the user does not exist.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
