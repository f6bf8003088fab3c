package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dropDatabas3/studyhub/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// WithMetrics records request count, latency and in-flight requests. Routes
// are labeled by their chi pattern so ids do not explode cardinality.
func WithMetrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.HTTPInflight.Inc()
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				m.HTTPInflight.Dec()
				route := "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					if p := rctx.RoutePattern(); p != "" {
						route = p
					}
				}
				m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
				m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
