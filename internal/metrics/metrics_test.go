package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.GateRejected("expired")
	m.GateRejected("expired")
	m.GateRejected("missing")
	m.AuthOp("login", "ok")

	require.Equal(t, 2.0, testutil.ToFloat64(m.GateRejections.WithLabelValues("expired")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.GateRejections.WithLabelValues("missing")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.AuthOps.WithLabelValues("login", "ok")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.GateRejected("invalid")
	m.AuthOp("register", "ok")
	m.ObserveHash("hash", 0.1)
	require.NoError(t, m.RegisterPool(nil))
}

func TestHandlerExposition(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.GateRejected("invalid")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	require.True(t, strings.Contains(string(body), `studyhub_auth_gate_rejections_total{reason="invalid"} 1`))
}

func TestNewTwice(t *testing.T) {
	_, err := New()
	require.NoError(t, err)
	_, err = New()
	require.NoError(t, err)
}
