// Package auth holds the HTTP controllers of the account endpoints.
package auth

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/studyhub/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/studyhub/internal/http/errors"
	"github.com/dropDatabas3/studyhub/internal/http/helpers"
	mw "github.com/dropDatabas3/studyhub/internal/http/middlewares"
	svc "github.com/dropDatabas3/studyhub/internal/http/services/auth"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Register handles POST /register.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	res, err := c.service.Register(r.Context(), req)
	if err != nil {
		logger.From(r.Context()).Debug("register failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, mapAuthError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User,
	})
}

// Login handles POST /login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	res, err := c.service.Login(r.Context(), req)
	if err != nil {
		logger.From(r.Context()).Debug("login failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, mapAuthError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

// VerifyToken handles POST /verify-token. It runs outside the auth gate
// because failures carry "valid": false in the body.
func (c *Controller) VerifyToken(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.VerifyToken(r.Context(), mw.BearerToken(r))
	if err != nil {
		appErr, _ := mw.TokenError(err)
		w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
		helpers.WriteJSON(w, appErr.HTTPStatus, dto.VerifyTokenError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Valid:   false,
		})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.VerifyTokenResponse{Valid: true, User: *user})
}

// Me handles GET /me.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request, p mw.Principal) {
	user, err := c.service.Me(r.Context(), p.UserID)
	if err != nil {
		httperrors.WriteError(w, mapAuthError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MeResponse{User: *user})
}

// mapAuthError is the single translation point from service errors to HTTP.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		return httperrors.ErrMissingFields
	case errors.Is(err, svc.ErrInvalidPassword):
		return httperrors.ErrBadRequest.WithDetail("password must be at most 72 bytes")
	case errors.Is(err, svc.ErrEmailTaken):
		return httperrors.ErrEmailAlreadyInUse
	case errors.Is(err, svc.ErrUserNotFound):
		return httperrors.ErrUserNotFound
	case errors.Is(err, svc.ErrInvalidCredentials):
		return httperrors.ErrInvalidCredentials
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}
