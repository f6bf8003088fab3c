// Package auth implements the account operations: register, login and
// token verification.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	dto "github.com/dropDatabas3/studyhub/internal/http/dto/auth"
	"github.com/dropDatabas3/studyhub/internal/jwt"
	"github.com/dropDatabas3/studyhub/internal/metrics"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidPassword    = errors.New("password rejected by hasher")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStorage wraps every unexpected failure of a collaborator.
	ErrStorage = errors.New("storage failure")
)

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, stored string) (bool, error)
}

// TokenService is satisfied by *jwt.Issuer.
type TokenService interface {
	Issue(userID, email, name string) (string, time.Time, error)
	Verify(raw string) (*jwt.Claims, error)
}

// Service is stateless; every dependency is immutable after NewService.
type Service interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResult, error)
	VerifyToken(ctx context.Context, raw string) (*dto.UserView, error)
	Me(ctx context.Context, userID string) (*dto.UserView, error)
}

type Deps struct {
	Users   repository.UserRepository
	Hasher  PasswordHasher
	Tokens  TokenService
	Metrics *metrics.Metrics
}

type service struct {
	deps Deps
}

func NewService(d Deps) Service {
	return &service{deps: d}
}

func view(u *repository.User) dto.UserView {
	return dto.UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// result labels an operation outcome for the auth_operations_total counter.
func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidPassword):
		return "invalid_input"
	case errors.Is(err, ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, jwt.ErrTokenMissing):
		return "token_missing"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, jwt.ErrTokenInvalid):
		return "token_invalid"
	default:
		return "error"
	}
}
