package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialmedia_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialmedia_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Business metrics
	AccountsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialmedia_accounts_registered_total",
			Help: "Total accounts registered",
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialmedia_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // "success" or "rejected"
	)

	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialmedia_messages_posted_total",
			Help: "Total messages posted",
		},
	)

	MessagesUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialmedia_messages_updated_total",
			Help: "Total message text updates",
		},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialmedia_messages_deleted_total",
			Help: "Total messages deleted",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialmedia_validation_failures_total",
			Help: "Rejected requests by violated rule",
		},
		[]string{"rule"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialmedia_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)
