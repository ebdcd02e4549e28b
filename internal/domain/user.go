package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered learner.
// A soft-deleted user keeps its row (DeletedAt set) so attempt history
// referencing it remains valid.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FullName       string     `json:"full_name,omitempty"`
	Password       string     `json:"-"` // Plaintext, used transiently during registration/updates
	HashedPassword string     `json:"-"` // Never exposed in JSON
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}

// NewUser creates a new User with the given email, username, and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only carries the plaintext password. The caller is
// responsible for hashing it before the user is stored.
func NewUser(email, username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		Password:  password,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}

	if u.Password != "" {
		// Plaintext password provided; enforce length bounds. The upper
		// bound matches bcrypt's 72-byte input limit.
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// SoftDelete marks the user as deleted and deactivates the account.
// The row itself is preserved so historical attempts stay resolvable.
func (u *User) SoftDelete(now time.Time) {
	t := now.UTC()
	u.DeletedAt = &t
	u.IsActive = false
	u.UpdatedAt = t
}

// validEmailFormat performs basic validation of email format: a single "@"
// with a non-empty local part and a dotted domain. Anything stricter belongs
// at the transport boundary.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return !strings.ContainsAny(email[:at], " \t")
}
