// Package metrics collects and exposes Prometheus metrics for the session
// lifecycle: sign-in/up/out and restore outcomes, profile write failures
// and identity-provider latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements usecase.Recorder on top of Prometheus.
type Collector struct {
	signIn              *prometheus.CounterVec
	signUp              *prometheus.CounterVec
	federated           *prometheus.CounterVec
	signOut             *prometheus.CounterVec
	restore             *prometheus.CounterVec
	profileWriteFailure prometheus.Counter
	providerLatency     *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionhub_sign_in_total",
			Help: "Credential sign-in attempts by result.",
		}, []string{"result"}),
		signUp: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionhub_sign_up_total",
			Help: "Credential sign-up attempts by result.",
		}, []string{"result"}),
		federated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionhub_federated_sign_in_total",
			Help: "Federated sign-in attempts by result.",
		}, []string{"result"}),
		signOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionhub_sign_out_total",
			Help: "Sign-out attempts by result.",
		}, []string{"result"}),
		restore: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionhub_session_restore_total",
			Help: "Session restore observations by result.",
		}, []string{"result"}),
		profileWriteFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionhub_profile_write_failures_total",
			Help: "Profile document writes that failed after authentication succeeded.",
		}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sessionhub_provider_latency_seconds",
			Help:    "Identity provider round-trip latency by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		c.signIn,
		c.signUp,
		c.federated,
		c.signOut,
		c.restore,
		c.profileWriteFailure,
		c.providerLatency,
	)

	return c
}

// RecordSignIn records a credential sign-in outcome.
func (c *Collector) RecordSignIn(result string) {
	c.signIn.WithLabelValues(result).Inc()
}

// RecordSignUp records a credential sign-up outcome.
func (c *Collector) RecordSignUp(result string) {
	c.signUp.WithLabelValues(result).Inc()
}

// RecordFederated records a federated sign-in outcome.
func (c *Collector) RecordFederated(result string) {
	c.federated.WithLabelValues(result).Inc()
}

// RecordSignOut records a sign-out outcome.
func (c *Collector) RecordSignOut(result string) {
	c.signOut.WithLabelValues(result).Inc()
}

// RecordRestore records a session restore observation.
func (c *Collector) RecordRestore(result string) {
	c.restore.WithLabelValues(result).Inc()
}

// RecordProfileWriteFailure records a profile write that failed after the
// provider call already succeeded.
func (c *Collector) RecordProfileWriteFailure() {
	c.profileWriteFailure.Inc()
}

// RecordProviderLatency records one provider round trip.
func (c *Collector) RecordProviderLatency(operation string, duration time.Duration) {
	c.providerLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
