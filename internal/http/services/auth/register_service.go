package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	dto "github.com/dropDatabas3/studyhub/internal/http/dto/auth"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
	"github.com/dropDatabas3/studyhub/internal/security/password"
)

// Register creates an account and returns a token for it. The email lookup
// is only a fast path: the repository's unique constraint decides races.
func (s *service) Register(ctx context.Context, in dto.RegisterRequest) (res *dto.AuthResult, err error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)
	defer func() { s.deps.Metrics.AuthOp("register", result(err)) }()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	switch _, err := s.deps.Users.GetByEmail(ctx, in.Email); {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		log.Error("email lookup failed", logger.Err(err))
		return nil, fmt.Errorf("%w: lookup email: %v", ErrStorage, err)
	}

	start := time.Now()
	hash, err := s.deps.Hasher.Hash(ctx, in.Password)
	s.deps.Metrics.ObserveHash("hash", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) || errors.Is(err, password.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
		}
		log.Error("password hash failed", logger.Err(err))
		return nil, fmt.Errorf("%w: hash: %v", ErrStorage, err)
	}

	u, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			log.Debug("lost registration race", logger.Email(in.Email))
			return nil, ErrEmailTaken
		}
		log.Error("create user failed", logger.Err(err))
		return nil, fmt.Errorf("%w: create user: %v", ErrStorage, err)
	}

	tok, exp, err := s.deps.Tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		log.Error("token issue failed", logger.UserID(u.ID), logger.Err(err))
		return nil, fmt.Errorf("%w: issue token: %v", ErrStorage, err)
	}

	log.Info("user registered", logger.UserID(u.ID))
	return &dto.AuthResult{Token: tok, ExpiresAt: exp, User: view(u)}, nil
}
