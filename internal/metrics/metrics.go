package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FiatConversionsTotal   prometheus.Counter
	CryptoConversionsTotal prometheus.Counter

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	UpstreamRequestsTotal    *prometheus.CounterVec
	UpstreamRateLimitedTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		FiatConversionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fiat_conversions_total",
				Help: "Total number of fiat conversion requests",
			},
		),

		CryptoConversionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crypto_conversions_total",
				Help: "Total number of crypto conversion requests",
			},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Cache hits by keyspace",
			},
			[]string{"keyspace"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Cache misses by keyspace",
			},
			[]string{"keyspace"},
		),

		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Upstream provider requests by outcome",
			},
			[]string{"provider", "outcome"},
		),

		UpstreamRateLimitedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "upstream_rate_limited_total",
				Help: "Total number of rate-limited upstream responses",
			},
		),
	}
}
