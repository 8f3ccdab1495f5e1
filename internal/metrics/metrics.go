// Package metrics exposes Prometheus instrumentation for the upstream client,
// the profile cache, reconciliation and the background refresher.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_api_requests_total",
			Help: "Total number of GitHub API requests by endpoint, outcome and status code",
		},
		[]string{"endpoint", "outcome", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "github_api_request_duration_seconds",
			Help:    "Duration of GitHub API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ProfileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_cache_lookups_total",
			Help: "Total number of profile cache lookups by result (hit, miss, bypass)",
		},
		[]string{"result"},
	)

	ProfileRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_refresh_duration_seconds",
			Help:    "Duration of full fetch-reduce-persist cycles in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)

	ReconcileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_reconcile_duration_seconds",
			Help:    "Duration of the persistence transaction replacing a profile snapshot",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	ReconciledRepositories = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_reconciled_repositories",
			Help:    "Number of repositories written per reconciliation",
			Buckets: []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		},
	)

	RefresherCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_refresher_refreshes_total",
			Help: "Total number of background profile refreshes by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordUpstreamRequest records one GitHub API call.
func RecordUpstreamRequest(endpoint, outcome string, status int, d time.Duration) {
	UpstreamRequests.WithLabelValues(endpoint, outcome, strconv.Itoa(status)).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordCacheLookup records whether a profile request was served from the store.
func RecordCacheLookup(result string) {
	ProfileCacheLookups.WithLabelValues(result).Inc()
}

func ObserveRefresh(outcome string, d time.Duration) {
	ProfileRefreshDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func ObserveReconcile(outcome string, repos int, d time.Duration) {
	ReconcileDuration.WithLabelValues(outcome).Observe(d.Seconds())
	if outcome == "ok" {
		ReconciledRepositories.Observe(float64(repos))
	}
}

func RecordBackgroundRefresh(outcome string) {
	RefresherCycles.WithLabelValues(outcome).Inc()
}

// Outcome maps an error to the "ok"/"error" label used across metrics.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
