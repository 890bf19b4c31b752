package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchRequestsTotal prometheus.Counter
	ListingsMatched     prometheus.Histogram
	RateLimitDropsTotal prometheus.Counter

	QuotesTotal         *prometheus.CounterVec
	SourceErrors        *prometheus.CounterVec
	SourceLatency       *prometheus.HistogramVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// Create Prometheus collectors and register them
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listing_search_requests_total",
			Help: "Total number of listing search requests",
		}),
		ListingsMatched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "listing_search_matches",
			Help:    "Number of listings returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		RateLimitDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staybook_ratelimit_drops_total",
			Help: "Requests dropped due to rate limiting",
		}),
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stay_quotes_total",
			Help: "Stay price quotes by outcome",
		}, []string{"outcome"},
		),
		SourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_source_errors_total",
			Help: "Errors returned by each listing source",
		}, []string{"source"},
		),
		SourceLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "listing_source_latency_seconds",
				Help:    "Latency of listing source reads",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: p,
	}

	p.MustRegister(
		m.SearchRequestsTotal,
		m.ListingsMatched,
		m.RateLimitDropsTotal,
		m.QuotesTotal,
		m.SourceErrors,
		m.SourceLatency,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

func (m *Metrics) IncSearchRequests()             { m.SearchRequestsTotal.Inc() }
func (m *Metrics) ObserveMatches(n int)           { m.ListingsMatched.Observe(float64(n)) }
func (m *Metrics) IncRateLimitDrops()             { m.RateLimitDropsTotal.Inc() }
func (m *Metrics) IncQuotes(outcome string)       { m.QuotesTotal.WithLabelValues(outcome).Inc() }
func (m *Metrics) IncSourceFailure(source string) { m.SourceErrors.WithLabelValues(source).Inc() }

func (m *Metrics) ObserveSourceLatency(source string, seconds float64) {
	m.SourceLatency.WithLabelValues(source).Observe(seconds)
}

func (m *Metrics) ObserveHTTPRequestDuration(method string, path string, status string, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) IncHTTPRequestsTotal(method string, path string, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
