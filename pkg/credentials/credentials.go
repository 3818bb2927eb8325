package credentials

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticatable account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is the result of a successful authentication: a signed,
// time-bounded access token plus an opaque refresh token. The refresh
// token carries no claims and is not derived from the access token;
// its lifecycle (rotation, revocation) is outside this package.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UserStore is the external user credential store consumed by the issuer.
type UserStore interface {
	// CreateUser persists a new user with its password hash. Returns
	// ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user *User, passwordHash []byte) error

	// GetUserByEmail returns ErrUserNotFound for unknown emails.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetPasswordHash returns the stored bcrypt hash for the user.
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
