package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, label string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label == "" && len(m.GetLabel()) == 0 {
				return m.GetCounter().GetValue()
			}
			for _, l := range m.GetLabel() {
				if l.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCollectorRecordsOutcomesByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignIn("success")
	c.RecordSignIn("success")
	c.RecordSignIn("failure")
	c.RecordSignUp("failure")
	c.RecordFederated("success")
	c.RecordSignOut("success")
	c.RecordRestore("anonymous")

	assert.Equal(t, float64(2), counterValue(t, reg, "sessionhub_sign_in_total", "success"))
	assert.Equal(t, float64(1), counterValue(t, reg, "sessionhub_sign_in_total", "failure"))
	assert.Equal(t, float64(1), counterValue(t, reg, "sessionhub_sign_up_total", "failure"))
	assert.Equal(t, float64(1), counterValue(t, reg, "sessionhub_federated_sign_in_total", "success"))
	assert.Equal(t, float64(1), counterValue(t, reg, "sessionhub_sign_out_total", "success"))
	assert.Equal(t, float64(1), counterValue(t, reg, "sessionhub_session_restore_total", "anonymous"))
}

func TestCollectorRecordsProfileWriteFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordProfileWriteFailure()
	c.RecordProfileWriteFailure()

	assert.Equal(t, float64(2), counterValue(t, reg, "sessionhub_profile_write_failures_total", ""))
}

func TestCollectorObservesProviderLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordProviderLatency("sign_in", 100*time.Millisecond)
	c.RecordProviderLatency("sign_in", 2*time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() != "sessionhub_provider_latency_seconds" {
			continue
		}
		found = true
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.InDelta(t, 2.1, h.GetSampleSum(), 0.05)
	}
	assert.True(t, found, "latency histogram not registered")
}

func TestHandlerServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSignIn("success")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sessionhub_sign_in_total")
}
