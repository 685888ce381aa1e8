package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blockfrost_proxy"

// ProxyMetrics собирает метрики redirect endpoint.
// Все методы безопасны для nil получателя.
type ProxyMetrics struct {
	requests         *prometheus.CounterVec
	upstreamErrors   *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	rateLimited      prometheus.Counter
}

// NewProxyMetrics registers the proxy metrics in reg. A nil reg leaves them unregistered.
func NewProxyMetrics(reg prometheus.Registerer) *ProxyMetrics {
	factory := promauto.With(reg)
	return &ProxyMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of proxied requests by network and response status.",
		}, []string{"network", "status"}),
		upstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Total number of Blockfrost error envelopes and transport failures.",
		}, []string{"network", "kind"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Latency of forwarded Blockfrost requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"network"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the per-client rate limiter.",
		}),
	}
}

// ObserveRequest records the final status returned to the caller.
func (m *ProxyMetrics) ObserveRequest(network string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(network, strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the latency of one forwarded request.
func (m *ProxyMetrics) ObserveUpstream(network string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(network).Observe(d.Seconds())
}

// IncUpstreamError counts an upstream failure; kind is "envelope", "transport" or "decode".
func (m *ProxyMetrics) IncUpstreamError(network, kind string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(network, kind).Inc()
}

// IncRateLimited counts a request rejected with 429.
func (m *ProxyMetrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
