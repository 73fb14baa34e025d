// Package metrics provides the centralized Prometheus metrics registry for the live scores service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sports_companion"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	LiveScoreRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_score_requests_total",
		Help:      "Live score requests by sport and the source that served them",
	}, []string{"sport", "source"})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Upstream provider calls by outcome (ok or error code)",
	}, []string{"provider", "outcome"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Fallback cache lookups by result (fresh, stale, miss)",
	}, []string{"sport", "result"})
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "User-facing notifications by level",
	}, []string{"level"})
	SyntheticMatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "synthetic_matches_total",
		Help:      "Synthetic matches generated by sport",
	}, []string{"sport"})
	ScheduledPollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduled_polls_total",
		Help:      "Cache warming polls by sport and serving source",
	}, []string{"sport", "source"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "API requests by route and status code",
	}, []string{"route", "status"})
)

// Gauge metrics
var (
	MatchesServed = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "matches_served",
		Help:      "Number of matches in the last batch served per sport",
	}, []string{"sport"})
	CacheAgeSeconds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_age_seconds",
		Help:      "Age of the cached batch when it was last used as a fallback",
	}, []string{"sport"})
	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Connected notification stream clients",
	})
)

// Histogram metrics
var (
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of upstream provider calls in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(LiveScoreRequestsTotal)
		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(CacheLookupsTotal)
		registry.MustRegister(NotificationsTotal)
		registry.MustRegister(SyntheticMatchesTotal)
		registry.MustRegister(ScheduledPollsTotal)
		registry.MustRegister(HTTPRequestsTotal)

		registry.MustRegister(MatchesServed)
		registry.MustRegister(CacheAgeSeconds)
		registry.MustRegister(WebsocketClients)

		registry.MustRegister(ProviderRequestDuration)
		registry.MustRegister(HTTPRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordLiveScoreRequest records which source served a batch.
func RecordLiveScoreRequest(sport, source string, matches int) {
	LiveScoreRequestsTotal.WithLabelValues(sport, source).Inc()
	MatchesServed.WithLabelValues(sport).Set(float64(matches))
}

// RecordProviderRequest records one upstream call.
func RecordProviderRequest(provider, outcome string, duration time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCacheLookup records a fallback cache lookup; age is ignored on a miss.
func RecordCacheLookup(sport, result string, age time.Duration) {
	CacheLookupsTotal.WithLabelValues(sport, result).Inc()
	if result != "miss" {
		CacheAgeSeconds.WithLabelValues(sport).Set(age.Seconds())
	}
}

// RecordNotification records a user-facing notification.
func RecordNotification(level string) {
	NotificationsTotal.WithLabelValues(level).Inc()
}

// RecordSyntheticMatches records generated sample matches.
func RecordSyntheticMatches(sport string, count int) {
	SyntheticMatchesTotal.WithLabelValues(sport).Add(float64(count))
}

// RecordScheduledPoll records a cache warming run.
func RecordScheduledPoll(sport, source string) {
	ScheduledPollsTotal.WithLabelValues(sport, source).Inc()
}

// RecordHTTPRequest records an API request.
func RecordHTTPRequest(route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// SetWebsocketClients updates the connected client gauge.
func SetWebsocketClients(count int) {
	WebsocketClients.Set(float64(count))
}
