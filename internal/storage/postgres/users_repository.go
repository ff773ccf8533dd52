package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user users.User) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, email, password_hash, token, created_at)
VALUES ($1, $2, $3, $4, now())
`, user.ID, user.Email, user.PasswordHash, user.Token)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return users.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.get(ctx, `
SELECT id, email, password_hash, token, created_at
  FROM users
 WHERE email = $1
 LIMIT 1
`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.get(ctx, `
SELECT id, email, password_hash, token, created_at
  FROM users
 WHERE id = $1
 LIMIT 1
`, id)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*users.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var user users.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Token, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
