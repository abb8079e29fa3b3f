package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks script runs and reloads.
type Metrics struct {
	runCount   atomic.Uint64
	runFailed  atomic.Uint64
	runTotalNs atomic.Int64
	runMinNs   atomic.Int64
	runMaxNs   atomic.Int64
	lastRunNs  atomic.Int64

	reloadCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so the first run will be smaller
	m.runMinNs.Store(1<<63 - 1)
	return m
}

// RecordRun records one script run.
func (m *Metrics) RecordRun(duration time.Duration, failed bool) {
	ns := duration.Nanoseconds()

	m.runCount.Add(1)
	m.runTotalNs.Add(ns)
	m.lastRunNs.Store(ns)
	if failed {
		m.runFailed.Add(1)
	}

	for {
		old := m.runMinNs.Load()
		if ns >= old || m.runMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.runMaxNs.Load()
		if ns <= old || m.runMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordReload records a re-run caused by a script change.
func (m *Metrics) RecordReload() {
	m.reloadCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	count := m.runCount.Load()
	total := m.runTotalNs.Load()

	var avg int64
	if count > 0 {
		avg = total / int64(count)
	}
	minNs := m.runMinNs.Load()
	if minNs == 1<<63-1 {
		minNs = 0
	}

	return MetricsSnapshot{
		Runs:    count,
		Failed:  m.runFailed.Load(),
		Reloads: m.reloadCount.Load(),
		AvgRun:  time.Duration(avg),
		MinRun:  time.Duration(minNs),
		MaxRun:  time.Duration(m.runMaxNs.Load()),
		LastRun: time.Duration(m.lastRunNs.Load()),
		Uptime:  time.Since(m.startTime),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Runs    uint64
	Failed  uint64
	Reloads uint64
	AvgRun  time.Duration
	MinRun  time.Duration
	MaxRun  time.Duration
	LastRun time.Duration
	Uptime  time.Duration
}

// Metrics returns the application metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
