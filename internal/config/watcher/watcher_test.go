package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNew_WithOptions(t *testing.T) {
	w := newWatcher(t, WithDebounce(50*time.Millisecond), WithBuffer(4))
	assert.Equal(t, 50*time.Millisecond, w.debounce)
	assert.Equal(t, 4, cap(w.events))

	d := newWatcher(t)
	assert.Equal(t, 100*time.Millisecond, d.debounce)
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestWatcher_WatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "termgrid.toml")
	require.NoError(t, os.WriteFile(existing, []byte("[render]\n"), 0o644))

	w := newWatcher(t)
	require.NoError(t, w.Watch(existing))
	require.NoError(t, w.Watch(existing))
	require.NoError(t, w.Watch(filepath.Join(dir, "later.toml")), "missing files can be watched")
	assert.Len(t, w.WatchedFiles(), 2)

	require.NoError(t, w.Unwatch(existing))
	assert.Len(t, w.WatchedFiles(), 1)

	assert.Error(t, w.Watch(filepath.Join(dir, "no-such-dir", "x.toml")))
}

func TestWatcher_DeliversDebouncedWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termgrid.toml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	var calls atomic.Int32
	w := newWatcher(t, WithDebounce(150*time.Millisecond))
	w.OnChange(func(Event) { calls.Add(1) })
	require.NoError(t, w.Watch(path))
	w.Start()
	assert.True(t, w.IsRunning())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	ev := waitEvent(t, w)
	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, ev.Path)
	assert.Equal(t, OpWrite, ev.Op)

	// A burst is one event.
	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected second event %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "termgrid.toml")

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))
	w.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, "termgrid.toml", filepath.Base(ev.Path))
	assert.Equal(t, OpCreate, ev.Op)
}

func TestWatcher_CloseClosesEvents(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()
	require.NoError(t, w.Close())
	assert.False(t, w.IsRunning())

	_, ok := <-w.Events()
	assert.False(t, ok)
	assert.ErrorIs(t, w.Watch("x.toml"), ErrClosed)
	require.NoError(t, w.Close())
}

func TestQueueEventCoalesces(t *testing.T) {
	w := newWatcher(t)
	now := time.Now()
	path := "/tmp/termgrid.toml"

	w.queueEvent(Event{Path: path, Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: path, Op: OpWrite, Time: now})
	assert.Equal(t, OpCreate, w.pendingFiles[path].Op)

	w.queueEvent(Event{Path: path, Op: OpRemove, Time: now})
	assert.Equal(t, OpRemove, w.pendingFiles[path].Op)

	w.queueEvent(Event{Path: path, Op: OpCreate, Time: now})
	assert.Equal(t, OpWrite, w.pendingFiles[path].Op, "remove then create is an atomic save")
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	w := newWatcher(t, WithDebounce(0))
	w.OnChange(func(Event) { panic("boom") })

	assert.NotPanics(t, func() {
		w.emitEvent(Event{Path: "x", Op: OpWrite, Time: time.Now()})
	})
	ev := <-w.Events()
	assert.Equal(t, "x", ev.Path)
}
