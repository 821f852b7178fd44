package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nomadix/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncTicks(result string)
	IncPromotions(level string)
	ObserveMergeDuration(duration time.Duration)
	SetRecordsTotal(count int)
	SetQueueSize(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	ticksTotal      *prometheus.CounterVec
	promotions      *prometheus.CounterVec
	mergeDuration   prometheus.Histogram
	recordsTotal    prometheus.Gauge
	queueSize       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncTicks(result string) {
	m.ticksTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncPromotions(level string) {
	m.promotions.WithLabelValues(level).Inc()
}

func (m *MetricsProvider) ObserveMergeDuration(duration time.Duration) {
	m.mergeDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(count int) {
	m.recordsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetQueueSize(count int) {
	m.queueSize.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadix_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nomadix_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nomadix_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nomadix_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		ticksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadix_tracking_ticks_total",
			Help: "Tracking ticks by outcome",
		}, []string{"result"}),

		promotions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadix_visits_promoted_total",
			Help: "Stays promoted to visits by place level",
		}, []string{"level"}),

		mergeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nomadix_merge_duration_seconds",
			Help:    "Duration of canonical list writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "nomadix_records_total",
			Help: "Number of records in the canonical travel history",
		}),

		queueSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "nomadix_visit_queue_size",
			Help: "Visits waiting for the next flush",
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncTicks(_ string)                                {}
func (n *noopMetrics) IncPromotions(_ string)                           {}
func (n *noopMetrics) ObserveMergeDuration(_ time.Duration)             {}
func (n *noopMetrics) SetRecordsTotal(_ int)                            {}
func (n *noopMetrics) SetQueueSize(_ int)                               {}
