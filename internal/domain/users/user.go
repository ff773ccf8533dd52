package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email is already taken")
)

// User is a registered account. Token holds the currently valid identity
// token verbatim; it is minted at registration and replaced wholesale, never
// versioned.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Token        string
	CreatedAt    time.Time
}

// Repository persists user records.
type Repository interface {
	// Create inserts the full record in a single write. A duplicate email
	// yields ErrEmailTaken and no partial state.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
