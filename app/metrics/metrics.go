// Package metrics provides Prometheus metrics for nav-hub.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts evaluated route decisions.
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navhub",
			Name:      "route_decisions_total",
			Help:      "Total number of evaluated route decisions",
		},
		[]string{"target", "reason"},
	)

	// RedirectsTotal counts fired redirects.
	RedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navhub",
			Name:      "redirects_total",
			Help:      "Total number of redirects delivered to shells",
		},
		[]string{"target"},
	)

	// InitTotal counts shell initializations by outcome.
	InitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navhub",
			Name:      "shell_init_total",
			Help:      "Total number of shell initializations",
		},
		[]string{"outcome"},
	)

	// InitDuration measures time from shell open to initialized.
	InitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "navhub",
			Name:      "shell_init_duration_seconds",
			Help:      "Time from shell open to first navigation decision in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	// IdentityEventsTotal counts consumed identity events.
	IdentityEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navhub",
			Name:      "identity_events_total",
			Help:      "Total number of consumed identity events",
		},
		[]string{"kind", "status"},
	)

	// ProfileFetchesTotal counts profile store reads.
	ProfileFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navhub",
			Name:      "profile_fetches_total",
			Help:      "Total number of profile fetches",
		},
		[]string{"status"},
	)

	// ActiveShells tracks the number of live shells.
	ActiveShells = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "navhub",
			Name:      "active_shells",
			Help:      "Number of currently registered shells",
		},
	)
)

// Init outcomes.
const (
	InitOutcomeResolved      = "resolved"
	InitOutcomeTimeout       = "timeout_recovered"
	InitOutcomeEventResolved = "event_resolved"
	InitOutcomeAbandoned     = "abandoned"
)

// RecordDecision records one evaluated decision.
func RecordDecision(target, reason string) {
	DecisionsTotal.WithLabelValues(target, reason).Inc()
}

// RecordRedirect records a redirect delivered to a shell.
func RecordRedirect(target string) {
	RedirectsTotal.WithLabelValues(target).Inc()
}

// RecordInit records a completed shell initialization.
func RecordInit(outcome string, duration float64) {
	InitTotal.WithLabelValues(outcome).Inc()
	InitDuration.Observe(duration)
}

// RecordIdentityEvent records a consumed identity event.
func RecordIdentityEvent(kind, status string) {
	IdentityEventsTotal.WithLabelValues(kind, status).Inc()
}

// RecordProfileFetch records a profile store read.
func RecordProfileFetch(status string) {
	ProfileFetchesTotal.WithLabelValues(status).Inc()
}

// SetActiveShells sets the live shell gauge.
func SetActiveShells(count int) {
	ActiveShells.Set(float64(count))
}
