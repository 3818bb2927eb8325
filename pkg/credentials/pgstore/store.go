// Package pgstore implements the credentials.UserStore contract on
// PostgreSQL.
package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/credentials"
	"github.com/dmitrymomot/tenantkit/pkg/pg"
)

// Store is a pgx-backed user credential store. Email uniqueness is
// enforced by a database constraint.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a user store over the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateUser(ctx context.Context, user *credentials.User, passwordHash []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, passwordHash, user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return credentials.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*credentials.User, error) {
	var user credentials.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, name, created_at FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, credentials.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *Store) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var hash []byte
	err := s.pool.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE id = $1`, userID,
	).Scan(&hash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, credentials.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash, nil
}
