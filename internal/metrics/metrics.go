// README: Prometheus metrics for the ranking engine and HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankingsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldops_rankings_served_total",
			Help: "Total number of ranking requests served",
		},
		[]string{"outcome"},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "fieldops_ranking_duration_seconds",
			Help: "Duration of ranking computation in seconds",
		},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fieldops_candidates_scored_total",
			Help: "Total number of contractors scored across all rankings",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldops_http_requests_total",
			Help: "Total HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fieldops_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)
)
