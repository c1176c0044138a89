package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for StreakRequests.
const (
	OutcomeSuggested        = "suggested"
	OutcomeFallback         = "fallback"
	OutcomeRejected         = "rejected"
	OutcomePreflight        = "preflight"
	OutcomeMethodNotAllowed = "method_not_allowed"
)

var (
	registerMetricsOnce sync.Once

	StreakRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_coach_requests_total",
			Help: "Streak setup requests by outcome",
		},
		[]string{"outcome"},
	)

	// Degradations counts fallback responses by cause. Callers never see
	// the difference, so this is the only place it shows up.
	Degradations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_coach_degraded_total",
			Help: "Fallback suggestions served, by cause",
		},
		[]string{"kind"},
	)

	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_coach_upstream_calls_total",
			Help: "Total Gemini calls",
		},
		[]string{"transport"},
	)

	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_coach_upstream_errors_total",
			Help: "Total failed Gemini calls",
		},
		[]string{"transport"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streak_coach_upstream_latency_seconds",
			Help:    "Gemini call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport"},
	)
)

func InitMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(StreakRequests, Degradations, UpstreamCalls, UpstreamErrors, UpstreamLatency)
	})
}
