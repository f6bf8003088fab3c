// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	httperrors "github.com/dropDatabas3/studyhub/internal/http/errors"
	"github.com/dropDatabas3/studyhub/internal/http/helpers"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
)

// Pinger is implemented by the store and the cache client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Controller struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewController probes every named check on /readyz. Nil checks are skipped.
func NewController(checks map[string]Pinger) *Controller {
	live := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			live[name] = p
		}
	}
	return &Controller{checks: live, timeout: 2 * time.Second}
}

// Healthz handles GET /healthz.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	status := map[string]string{}
	ready := true
	for name, p := range c.checks {
		if err := p.Ping(ctx); err != nil {
			logger.From(ctx).Warn("readiness check failed", logger.Component(name), logger.Err(err))
			status[name] = "down"
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"status": "ready", "checks": status})
}
