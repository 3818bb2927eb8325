package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Issuer authenticates users and mints credentials. Signing material is
// resolved per request: tenant-specific when the request context carries
// a tenant with a JWTAuthority override, global otherwise.
type Issuer struct {
	users      UserStore
	settings   JwtSettings
	bcryptCost int
	log        *slog.Logger
	now        func() time.Time
}

// IssuerOption configures an Issuer during construction.
type IssuerOption func(*Issuer)

// WithIssuerLogger sets a custom logger.
func WithIssuerLogger(log *slog.Logger) IssuerOption {
	return func(i *Issuer) {
		if log != nil {
			i.log = log
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) IssuerOption {
	return func(i *Issuer) { i.bcryptCost = cost }
}

// WithClock overrides the time source, used by tests to control expiry.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates a credential issuer over the given user store.
func NewIssuer(users UserStore, settings JwtSettings, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		users:      users,
		settings:   settings,
		bcryptCost: bcrypt.DefaultCost,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Login authenticates a user by email and password and mints a
// credential. Unknown email and wrong password both return the identical
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (i *Issuer) Login(ctx context.Context, email, password string) (*Credential, error) {
	email = normalizeEmail(email)

	user, err := i.users.GetUserByEmail(ctx, email)
	if err != nil {
		i.log.DebugContext(ctx, "login failed: user lookup", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	hash, err := i.users.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		i.log.DebugContext(ctx, "login failed: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return i.issue(ctx, user)
}

// Register creates a user and performs the login flow for it, returning
// a freshly minted credential. A taken email fails with
// ErrEmailAlreadyExists.
func (i *Issuer) Register(ctx context.Context, email, password string) (*Credential, error) {
	email = normalizeEmail(email)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), i.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	local, _, _ := strings.Cut(email, "@")
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      local,
		CreatedAt: i.now().UTC(),
	}
	if err := i.users.CreateUser(ctx, user, hash); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	i.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return i.issue(ctx, user)
}

// issue builds and signs the access token for the user under the
// signing parameters resolved from the request context, and generates
// the opaque refresh token.
func (i *Issuer) issue(ctx context.Context, user *User) (*Credential, error) {
	params := ResolveSigningParams(ctx, i.settings)

	now := i.now().UTC()
	expiresAt := now.Add(time.Duration(i.settings.ExpiryHours) * time.Hour)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    params.Issuer,
			Audience:  jwt.ClaimStrings{params.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(params.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &Credential{
		AccessToken: accessToken,
		// Opaque and globally unique; no claims, not derived from the
		// access token.
		RefreshToken: uuid.NewString(),
		ExpiresAt:    expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
