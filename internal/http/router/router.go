// Package router wires controllers and middlewares into a chi router.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/studyhub/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/studyhub/internal/http/controllers/health"
	notesctrl "github.com/dropDatabas3/studyhub/internal/http/controllers/notes"
	httperrors "github.com/dropDatabas3/studyhub/internal/http/errors"
	mw "github.com/dropDatabas3/studyhub/internal/http/middlewares"
	"github.com/dropDatabas3/studyhub/internal/metrics"
)

type Deps struct {
	Auth   *authctrl.Controller
	Notes  *notesctrl.Controller
	Health *healthctrl.Controller

	// Tokens verifies bearer tokens for every protected route.
	Tokens  mw.TokenVerifier
	Metrics *metrics.Metrics
}

// New returns the root handler. Protected routes share a single group so
// they all go through the same RequireAuth instance.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(d.Metrics),
		mw.WithSecurityHeaders(),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	if d.Health != nil {
		r.Get("/healthz", d.Health.Healthz)
		r.Get("/readyz", d.Health.Readyz)
	}
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	// public account routes
	r.Group(func(r chi.Router) {
		r.Use(mw.WithNoStore())
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
		r.Post("/verify-token", d.Auth.VerifyToken)
	})

	// protected
	r.Group(func(r chi.Router) {
		r.Use(
			mw.WithNoStore(),
			mw.RequireAuth(d.Tokens, mw.WithRejectionRecorder(d.Metrics)),
		)
		r.Method(http.MethodGet, "/me", mw.Authed(d.Auth.Me))

		r.Route("/notes", func(r chi.Router) {
			r.Method(http.MethodGet, "/", mw.Authed(d.Notes.List))
			r.Method(http.MethodPost, "/", mw.Authed(d.Notes.Create))
			r.Method(http.MethodGet, "/{id}", mw.Authed(d.Notes.Get))
			r.Method(http.MethodPut, "/{id}", mw.Authed(d.Notes.Update))
			r.Method(http.MethodDelete, "/{id}", mw.Authed(d.Notes.Delete))
		})
	})

	return r
}
