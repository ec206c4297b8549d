// Package metrics declares the Prometheus collectors exported on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SessionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunetrivia_sessions_created_total",
			Help: "Game sessions created, by provider",
		},
		[]string{"provider"},
	)
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tunetrivia_sessions_active",
			Help: "Game sessions currently in memory",
		},
	)
	GuessesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunetrivia_guesses_total",
			Help: "Guesses submitted, by outcome",
		},
		[]string{"result"},
	)
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunetrivia_provider_requests_total",
			Help: "Song provider fetches, by provider and status",
		},
		[]string{"provider", "status"},
	)
	ProviderFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tunetrivia_provider_fetch_duration_seconds",
			Help:    "Song provider fetch time",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register installs the collectors on the default registry. Call once
// at startup.
func Register() {
	prometheus.MustRegister(
		SessionsCreated,
		SessionsActive,
		GuessesTotal,
		ProviderRequests,
		ProviderFetchDuration,
	)
}
