package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	dto "github.com/dropDatabas3/studyhub/internal/http/dto/auth"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
)

// VerifyToken returns the identity carried by raw. Errors are the jwt
// sentinels unchanged, so callers can tell missing, expired and invalid apart.
func (s *service) VerifyToken(ctx context.Context, raw string) (_ *dto.UserView, err error) {
	defer func() { s.deps.Metrics.AuthOp("verify_token", result(err)) }()

	claims, err := s.deps.Tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	return &dto.UserView{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}

// Me loads the stored profile of an authenticated user.
func (s *service) Me(ctx context.Context, userID string) (*dto.UserView, error) {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.From(ctx).Error("user lookup failed",
			logger.Layer("service"), logger.Op("Me"), logger.Err(err))
		return nil, fmt.Errorf("%w: lookup user: %v", ErrStorage, err)
	}
	v := view(u)
	return &v, nil
}
