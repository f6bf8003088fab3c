package middlewares

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/studyhub/internal/http/errors"
	"github.com/dropDatabas3/studyhub/internal/jwt"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
)

// TokenVerifier is satisfied by *jwt.Issuer.
type TokenVerifier interface {
	Verify(raw string) (*jwt.Claims, error)
}

// RejectionRecorder counts gate rejections; *metrics.Metrics implements it.
type RejectionRecorder interface {
	GateRejected(reason string)
}

// AuthedHandlerFunc receives the resolved caller ahead of any route parameter.
type AuthedHandlerFunc func(w http.ResponseWriter, r *http.Request, p Principal)

type gateOptions struct {
	recorder RejectionRecorder
}

// GateOption configures RequireAuth and Protect.
type GateOption func(*gateOptions)

// WithRejectionRecorder reports every rejection to rec.
func WithRejectionRecorder(rec RejectionRecorder) GateOption {
	return func(o *gateOptions) { o.recorder = rec }
}

// BearerToken returns the token of the Authorization header. The "Bearer "
// prefix is optional and case-insensitive; a bare token is accepted as is.
func BearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) >= 7 && strings.EqualFold(ah[:7], "bearer ") {
		return strings.TrimSpace(ah[7:])
	}
	if strings.EqualFold(ah, "bearer") {
		return ""
	}
	return ah
}

// TokenError maps a verification error to its HTTP form and a metrics reason.
func TokenError(err error) (*errors.AppError, string) {
	switch {
	case stderrors.Is(err, jwt.ErrTokenMissing):
		return errors.ErrTokenMissing, "missing"
	case stderrors.Is(err, jwt.ErrTokenExpired):
		return errors.ErrTokenExpired, "expired"
	default:
		return errors.ErrTokenInvalid, "invalid"
	}
}

// RequireAuth verifies the bearer token and stores the Principal in the
// request context. Rejected requests never reach next.
func RequireAuth(v TokenVerifier, opts ...GateOption) Middleware {
	var o gateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := v.Verify(BearerToken(r))
			if err != nil {
				appErr, reason := TokenError(err)
				if o.recorder != nil {
					o.recorder.GateRejected(reason)
				}
				logger.From(r.Context()).Debug("auth gate rejected request",
					logger.Component("auth_gate"), logger.Reason(reason))
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, appErr)
				return
			}

			p := Principal{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}
			ctx := WithPrincipal(r.Context(), p)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(p.UserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Protect wraps h behind RequireAuth.
func Protect(v TokenVerifier, h AuthedHandlerFunc, opts ...GateOption) http.Handler {
	return Chain(Authed(h), RequireAuth(v, opts...))
}

// Authed adapts h for routes already behind RequireAuth. A request without a
// Principal is answered with 401 and h is not called.
func Authed(h AuthedHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			errors.WriteError(w, errors.ErrTokenMissing)
			return
		}
		h(w, r, p)
	})
}
