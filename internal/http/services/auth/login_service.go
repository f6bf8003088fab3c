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
)

func (s *service) Login(ctx context.Context, in dto.LoginRequest) (res *dto.AuthResult, err error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)
	defer func() { s.deps.Metrics.AuthOp("login", result(err)) }()

	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("unknown account", logger.Email(in.Email))
			return nil, ErrUserNotFound
		}
		log.Error("user lookup failed", logger.Err(err))
		return nil, fmt.Errorf("%w: lookup user: %v", ErrStorage, err)
	}

	start := time.Now()
	ok, err := s.deps.Hasher.Verify(ctx, in.Password, u.PasswordHash)
	s.deps.Metrics.ObserveHash("verify", time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: verify password: %v", ErrStorage, err)
	}
	if !ok {
		log.Debug("password mismatch", logger.UserID(u.ID))
		return nil, ErrInvalidCredentials
	}

	tok, exp, err := s.deps.Tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		log.Error("token issue failed", logger.UserID(u.ID), logger.Err(err))
		return nil, fmt.Errorf("%w: issue token: %v", ErrStorage, err)
	}
	return &dto.AuthResult{Token: tok, ExpiresAt: exp, User: view(u)}, nil
}
