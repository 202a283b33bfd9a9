package app

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	s := NewMetrics().Snapshot()
	assert.Zero(t, s.FrameCount)
	assert.Zero(t, s.MinFrameTimeNs, "min sentinel is hidden")
	assert.Zero(t, s.MaxFPS())
	assert.Zero(t, s.LateRate())
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(6 * time.Millisecond)

	s := m.Snapshot()
	assert.Equal(t, uint64(3), s.FrameCount)
	assert.Equal(t, int64(6*time.Millisecond), s.MinFrameTimeNs)
	assert.Equal(t, int64(20*time.Millisecond), s.MaxFrameTimeNs)
	assert.Equal(t, int64(6*time.Millisecond), s.LastFrameNs)
	assert.Equal(t, int64(12*time.Millisecond), s.AvgFrameTimeNs)
	assert.InDelta(t, 1000.0/12, s.MaxFPS(), 0.01)
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(time.Millisecond)
	m.RecordFrame(time.Millisecond)
	m.RecordLateFrame()
	m.RecordClipped(4)
	m.RecordClipped(0)
	m.RecordClipped(-2)
	m.RecordReload(true)
	m.RecordReload(false)
	m.RecordReload(false)

	s := m.Snapshot()
	assert.Equal(t, uint64(1), s.LateFrames)
	assert.InDelta(t, 50.0, s.LateRate(), 0.001)
	assert.Equal(t, uint64(4), s.ClippedCells)
	assert.Equal(t, uint64(1), s.Reloads)
	assert.Equal(t, uint64(2), s.ReloadsFailed)
	assert.Positive(t, s.DeliveredFPS())
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordFrame(d)
			}
		}(time.Duration(i) * time.Millisecond)
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, uint64(800), s.FrameCount)
	assert.Equal(t, int64(time.Millisecond), s.MinFrameTimeNs)
	assert.Equal(t, int64(8*time.Millisecond), s.MaxFrameTimeNs)
}
