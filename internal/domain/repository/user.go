package repository

import (
	"context"
	"time"
)

// User is a registered account. Rows are never updated or deleted by the service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserInput carries an already hashed password.
type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}

// UserRepository persists account credentials.
type UserRepository interface {
	// Create inserts a user and assigns its ID. A duplicate email returns
	// ErrConflict, decided by the storage unique constraint.
	Create(ctx context.Context, in CreateUserInput) (*User, error)

	// GetByEmail matches the email exactly. Returns ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*User, error)
}
