package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Social graph metrics
	FollowsTotal prometheus.CounterVec
	ListensTotal prometheus.CounterVec
	UsersIndexed prometheus.GaugeVec

	// Recommendation metrics
	RecommendationsServed   prometheus.CounterVec
	RecommendationDuration  prometheus.HistogramVec
	RecommendationErrors    prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Validation metrics
	ValidationFailures prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			FollowsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "social_follows_total",
					Help: "Total number of follow edges recorded",
				},
				[]string{"status"},
			),
			ListensTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "social_listens_total",
					Help: "Total number of listen events recorded",
				},
				[]string{"status"},
			),
			UsersIndexed: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "store_users_indexed",
					Help: "Number of users currently in the user store",
				},
				[]string{},
			),
			RecommendationsServed: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendations_served_total",
					Help: "Total number of recommendation lists served",
				},
				[]string{"status"},
			),
			RecommendationDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recommendation_duration_seconds",
					Help:    "Full recommendation pipeline latency in seconds",
					Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
				},
				[]string{},
			),
			RecommendationErrors: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendation_errors_total",
					Help: "Recommendation failures by kind",
				},
				[]string{"kind"},
			),
			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total cache hits",
				},
				[]string{"cache"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total cache misses",
				},
				[]string{"cache"},
			),
			ValidationFailures: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "validation_failures_total",
					Help: "Request validation failures by field",
				},
				[]string{"field"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it on first use. Initialize
// is once-guarded, so going through it keeps concurrent first calls safe.
func Get() *Metrics {
	return Initialize()
}
