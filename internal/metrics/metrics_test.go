package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.IncrementClientsCreated()
	m.ObserveRegistration("ok")
	m.ObserveUnregistration("not_found")
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.IncrementClientsCreated()
	m.ObserveRegistration("ok")
	m.ObserveRegistration("conflict")
	m.ObserveRegistration("conflict")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClientsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues("conflict")))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "travel_clients_created_total 1")
	assert.NotContains(t, w.Body.String(), "go_goroutines")
}
