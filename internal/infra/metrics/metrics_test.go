package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveAuth(t *testing.T) {
	m := New()

	m.ObserveAuth("login", "success")
	m.ObserveAuth("login", "success")
	m.ObserveAuth("login", "INVALID_CREDENTIALS")

	assert.InDelta(t, 2, testutil.ToFloat64(m.authTotal.WithLabelValues("login", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.authTotal.WithLabelValues("login", "INVALID_CREDENTIALS")), 0)
}

func TestMetrics_RequestLifecycle(t *testing.T) {
	m := New()

	done := m.RequestStarted(http.MethodPost)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpInFlight), 0)

	done("/login", "200")
	assert.InDelta(t, 0, testutil.ToFloat64(m.httpInFlight), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/login", "200")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveAuth("refresh", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tracker_auth_operations_total{operation="refresh",outcome="success"} 1`)
}
