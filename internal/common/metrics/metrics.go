package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeConfigMissing    = "config_missing"
	OutcomeAuthFailed       = "auth_failed"
	OutcomeAppendFailed     = "append_failed"
	OutcomeTimeout          = "timeout"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeBodyRejected     = "body_rejected"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capex_submissions_total",
			Help: "Total number of entry submissions by outcome",
		},
		[]string{"outcome"},
	)

	SheetsAppendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "capex_sheets_append_duration_seconds",
			Help:    "Duration of Google Sheets authenticate+append calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capex_http_requests_total",
			Help: "Total number of HTTP requests by method and status code",
		},
		[]string{"method", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "capex_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)
