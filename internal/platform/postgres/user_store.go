package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/curricula-api/internal/domain"
	"github.com/phrazzld/curricula-api/internal/platform/logger"
	"github.com/phrazzld/curricula-api/internal/store"
)

// userConstraintErrors maps named unique constraints on the users table to
// their specific store errors.
var userConstraintErrors = map[string]error{
	"users_email_key":    store.ErrEmailExists,
	"users_username_key": store.ErrUsernameExists,
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database, handling domain validation.
// Returns store.ErrEmailExists or store.ErrUsernameExists on unique
// violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, email, username, full_name, hashed_password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Username,
		user.FullName,
		user.HashedPassword,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		mapped := mapUniqueViolation(err, userConstraintErrors)
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return mapped
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist or is
// soft-deleted.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, username, full_name, hashed_password, is_active, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return s.scanUser(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist or is
// soft-deleted.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, full_name, hashed_password, is_active, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	return s.scanUser(ctx, query, email)
}

// Update implements store.UserStore.Update
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $1, username = $2, full_name = $3, hashed_password = $4, is_active = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.Username,
		user.FullName,
		user.HashedPassword,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return mapUniqueViolation(err, userConstraintErrors)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	log.Debug("user updated successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// SoftDelete implements store.UserStore.SoftDelete
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	query := `
		UPDATE users
		SET deleted_at = $1, is_active = FALSE, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, now, id)
	if err != nil {
		log.Error("failed to soft-delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	log.Info("user soft-deleted", slog.String("user_id", id.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanUser runs a single-row user query and scans the result.
func (s *PostgresUserStore) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	var deletedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FullName,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		user.DeletedAt = &t
	}

	return &user, nil
}
