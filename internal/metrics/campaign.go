package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/limbcalc/internal/orchestration"
)

// CampaignMetrics counts cases and failures per check and width. It
// implements orchestration.RunRecorder.
type CampaignMetrics struct {
	registry *prometheus.Registry
	memory   *MemoryCollector

	casesTotal    *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	heapAlloc     prometheus.Gauge
	heapObjects   prometheus.Gauge
	numGC         prometheus.Gauge
}

// NewCampaignMetrics registers the campaign collectors on a private
// registry, so repeated campaigns in one process never collide.
func NewCampaignMetrics() *CampaignMetrics {
	m := &CampaignMetrics{
		registry: prometheus.NewRegistry(),
		memory:   NewMemoryCollector(),
	}
	m.casesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "limbcalc_cases_total",
		Help: "Total number of cases that passed",
	}, []string{"check", "width"})
	m.failuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "limbcalc_failures_total",
		Help: "Total number of runs that ended in a failure or interruption",
	}, []string{"check", "width"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "limbcalc_check_duration_seconds",
		Help:    "Wall time of a single check run",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"check"})
	m.heapAlloc = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "limbcalc_heap_alloc_bytes",
		Help: "Heap bytes in use when the snapshot was taken",
	})
	m.heapObjects = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "limbcalc_heap_objects",
		Help: "Allocated heap objects when the snapshot was taken",
	})
	m.numGC = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "limbcalc_gc_cycles",
		Help: "Completed GC cycles when the snapshot was taken",
	})

	m.registry.MustRegister(m.casesTotal, m.failuresTotal, m.duration, m.heapAlloc, m.heapObjects, m.numGC)
	return m
}

// RecordRun adds a finished run to the counters. Safe for concurrent use.
func (m *CampaignMetrics) RecordRun(r orchestration.RunResult) {
	width := strconv.Itoa(r.Width)
	m.casesTotal.WithLabelValues(r.Check, width).Add(float64(r.Cases))
	if r.Err != nil {
		m.failuresTotal.WithLabelValues(r.Check, width).Inc()
	}
	m.duration.WithLabelValues(r.Check).Observe(r.Duration.Seconds())
}

// SnapshotMemory copies the current runtime memory statistics into the
// gauges and returns them.
func (m *CampaignMetrics) SnapshotMemory() MemorySnapshot {
	snap := m.memory.Snapshot()
	m.heapAlloc.Set(float64(snap.HeapAlloc))
	m.heapObjects.Set(float64(snap.HeapObjects))
	m.numGC.Set(float64(snap.NumGC))
	return snap
}

// Registry exposes the private registry, mainly for tests.
func (m *CampaignMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile snapshots memory and writes every collector to path in the
// text exposition format, for the node exporter textfile collector.
func (m *CampaignMetrics) WriteTextfile(path string) error {
	m.SnapshotMemory()
	return prometheus.WriteToTextfile(path, m.registry)
}
