package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

var registry = prometheus.NewRegistry()

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Inbound HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Inbound HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "github",
		Name:      "upstream_calls_total",
		Help:      "GitHub API calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	contactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "contact",
		Name:      "submissions_total",
		Help:      "Contact form submissions by result.",
	}, []string{"result"})

	credentialValid = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "github",
		Name:      "credential_valid",
		Help:      "1 when the last credential probe succeeded, 0 otherwise.",
	})

	rateLimitRemaining = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "github",
		Name:      "rate_limit_remaining",
		Help:      "Remaining GitHub API calls per rate limit resource, as reported by the last response.",
	}, []string{"resource"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		upstreamCalls,
		contactSubmissions,
		credentialValid,
		rateLimitRemaining,
	)
}

// * Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// * Registry is exposed for tests that gather values directly
func Registry() *prometheus.Registry {
	return registry
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ObserveUpstream(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	upstreamCalls.WithLabelValues(operation, outcome).Inc()
}

func ObserveContact(result string) {
	contactSubmissions.WithLabelValues(result).Inc()
}

func SetCredentialValid(valid bool) {
	if valid {
		credentialValid.Set(1)
		return
	}
	credentialValid.Set(0)
}

func SetRateLimitRemaining(resource string, remaining int) {
	rateLimitRemaining.WithLabelValues(resource).Set(float64(remaining))
}
