// File: control/metrics.go
//
// Prometheus collectors for the engine's wait loop, the body adapters and
// the request glue. Safe for concurrent use.

package control

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the component's Prometheus collectors.
type Metrics struct {
	WaitRounds   prometheus.Counter
	WaitDuration prometheus.Histogram
	WakersFired  prometheus.Counter

	BytesWritten  prometheus.Counter
	BytesRead     prometheus.Counter
	ChunksWritten prometheus.Counter
	ChunksRead    prometheus.Counter

	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewMetrics creates the collectors on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates the collectors using the supplied registerer.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		WaitRounds: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_wait_rounds_total",
			Help: "Multi-wait rounds issued by the executor",
		}),
		WaitDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "openai_component_wait_duration_seconds",
			Help:    "Time spent blocked in the host multi-wait",
			Buckets: prometheus.DefBuckets,
		}),
		WakersFired: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_wakers_fired_total",
			Help: "Readiness sources that fired during multi-wait rounds",
		}),
		BytesWritten: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_body_bytes_written_total",
			Help: "Request body bytes accepted by the host",
		}),
		BytesRead: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_body_bytes_read_total",
			Help: "Response body bytes received from the host",
		}),
		ChunksWritten: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_body_chunks_written_total",
			Help: "Request body chunks fully written and flushed",
		}),
		ChunksRead: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_body_chunks_read_total",
			Help: "Response body chunks yielded to the consumer",
		}),
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "openai_component_requests_total",
			Help: "Dispatched requests by outcome",
		}, []string{"status"}),
		RequestDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "openai_component_request_duration_seconds",
			Help:    "Wall time from dispatch to response resolution",
			Buckets: prometheus.DefBuckets,
		}),
		CacheHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_cache_hits_total",
			Help: "Prompt cache hits",
		}),
		CacheMisses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "openai_component_cache_misses_total",
			Help: "Prompt cache misses",
		}),
	}
}

// ObserveWait records one multi-wait round.
func (m *Metrics) ObserveWait(start time.Time, fired int) {
	if m == nil {
		return
	}
	m.WaitRounds.Inc()
	m.WaitDuration.Observe(time.Since(start).Seconds())
	m.WakersFired.Add(float64(fired))
}

// ObserveRequest records one resolved dispatch.
func (m *Metrics) ObserveRequest(status int, start time.Time, err error) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	if err != nil {
		label = "error"
	}
	m.RequestsTotal.WithLabelValues(label).Inc()
	m.RequestDuration.Observe(time.Since(start).Seconds())
}

// AddBytesWritten records accepted request-body bytes.
func (m *Metrics) AddBytesWritten(n int) {
	if m == nil {
		return
	}
	m.BytesWritten.Add(float64(n))
}

// AddBytesRead records received response-body bytes.
func (m *Metrics) AddBytesRead(n int) {
	if m == nil {
		return
	}
	m.BytesRead.Add(float64(n))
}

// IncChunkWritten records one fully written chunk.
func (m *Metrics) IncChunkWritten() {
	if m == nil {
		return
	}
	m.ChunksWritten.Inc()
}

// IncChunkRead records one yielded chunk.
func (m *Metrics) IncChunkRead() {
	if m == nil {
		return
	}
	m.ChunksRead.Inc()
}

// IncCacheHit records a prompt cache hit.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// IncCacheMiss records a prompt cache miss.
func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}
