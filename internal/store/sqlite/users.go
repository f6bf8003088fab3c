package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	u := &repository.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    fromMillis(toMillis(r.s.now())),
	}
	const q = `INSERT INTO app_user (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.s.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, toMillis(u.CreatedAt)); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("sqlite: insert user: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	const q = `SELECT id, name, email, password_hash, created_at FROM app_user WHERE email = ?`
	return r.scanOne(r.s.db.QueryRowContext(ctx, q, email), "get user by email")
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	const q = `SELECT id, name, email, password_hash, created_at FROM app_user WHERE id = ?`
	return r.scanOne(r.s.db.QueryRowContext(ctx, q, id), "get user by id")
}

func (r *userRepo) scanOne(row *sql.Row, op string) (*repository.User, error) {
	var u repository.User
	var created int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	u.CreatedAt = fromMillis(created)
	return &u, nil
}
