package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks frame loop timing. It is safe for concurrent use.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Frames whose draw took longer than the frame interval.
	lateFrames atomic.Uint64

	// Cells dropped by clipping, summed over all frames.
	clippedCells atomic.Uint64

	// Config reloads applied and rejected.
	reloads       atomic.Uint64
	reloadsFailed atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records how long one frame took to build and present.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordLateFrame records a frame that overran its interval.
func (m *Metrics) RecordLateFrame() {
	m.lateFrames.Add(1)
}

// RecordClipped adds n clipped cells.
func (m *Metrics) RecordClipped(n int) {
	if n > 0 {
		m.clippedCells.Add(uint64(n))
	}
}

// RecordReload records a config reload attempt.
func (m *Metrics) RecordReload(ok bool) {
	if ok {
		m.reloads.Add(1)
	} else {
		m.reloadsFailed.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		LateFrames:     m.lateFrames.Load(),
		ClippedCells:   m.clippedCells.Load(),
		Reloads:        m.reloads.Load(),
		ReloadsFailed:  m.reloadsFailed.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	LateFrames     uint64
	ClippedCells   uint64
	Reloads        uint64
	ReloadsFailed  uint64
}

// DeliveredFPS returns frames per second over the uptime, which includes
// the time spent waiting between frames.
func (s MetricsSnapshot) DeliveredFPS() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.FrameCount) / s.Uptime.Seconds()
}

// MaxFPS returns the frame rate the average frame time would allow.
func (s MetricsSnapshot) MaxFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// LateRate returns the percentage of frames that overran their interval.
func (s MetricsSnapshot) LateRate() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.LateFrames) / float64(s.FrameCount) * 100
}
