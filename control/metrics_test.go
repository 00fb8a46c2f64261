package control_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Aditya1404Sal/openai-component/control"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := control.NewMetricsWithRegistry(reg)

	m.ObserveWait(time.Now(), 3)
	m.ObserveWait(time.Now(), 1)
	m.AddBytesWritten(100)
	m.AddBytesRead(250)
	m.IncChunkWritten()
	m.IncChunkRead()
	m.IncChunkRead()
	m.IncCacheHit()
	m.IncCacheMiss()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WaitRounds))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.WakersFired))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.BytesWritten))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.BytesRead))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChunksWritten))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChunksRead))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
}

func TestMetricsRequestLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := control.NewMetricsWithRegistry(reg)

	m.ObserveRequest(200, time.Now(), nil)
	m.ObserveRequest(200, time.Now(), nil)
	m.ObserveRequest(0, time.Now(), assert.AnError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("error")))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *control.Metrics
	assert.NotPanics(t, func() {
		m.ObserveWait(time.Now(), 1)
		m.ObserveRequest(200, time.Now(), nil)
		m.AddBytesWritten(1)
		m.AddBytesRead(1)
		m.IncChunkWritten()
		m.IncChunkRead()
		m.IncCacheHit()
		m.IncCacheMiss()
	})
}
