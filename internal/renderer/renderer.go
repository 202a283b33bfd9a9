package renderer

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/termgrid/internal/renderer/ansi"
	"github.com/dshills/termgrid/internal/renderer/backend"
	"github.com/dshills/termgrid/internal/renderer/core"
)

// State is the renderer's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Options configures the renderer.
type Options struct {
	Logger zerolog.Logger
	// HideCursor hides the cursor before the first frame. Close shows it
	// again.
	HideCursor bool
}

// DefaultOptions returns options with a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

// Stats describes drawing so far.
type Stats struct {
	Frames       uint64
	LastDuration time.Duration
	LastClip     core.ClipStats
	TotalClipped int
}

// Renderer draws canvases onto a backend. A Draw that begins while another
// is still running fails with ErrRenderInProgress.
type Renderer struct {
	backend backend.Backend
	opts    Options
	log     zerolog.Logger
	state   atomic.Int32

	cursorHidden bool

	mu    sync.Mutex
	stats Stats
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "renderer").Logger(),
	}
}

// Backend returns the backend frames are presented to.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	return State(r.state.Load())
}

// Draw resets c's active region, composites its children and presents the
// grid at c's position.
func (r *Renderer) Draw(c *Canvas) error {
	if c == nil {
		return ErrNilView
	}
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateRendering)) {
		return ErrRenderInProgress
	}
	defer r.state.Store(int32(StateIdle))

	if r.opts.HideCursor && !r.cursorHidden {
		r.backend.HideCursor()
		r.cursorHidden = true
	}

	start := time.Now()
	c.Reset()
	clip := c.Render()
	if clip.Clipped > 0 {
		r.log.Debug().
			Int("written", clip.Written).
			Int("clipped", clip.Clipped).
			Msg("children clipped")
	}

	if err := r.backend.Present(backend.Frame{X: c.x, Y: c.y, Grid: c.grid}); err != nil {
		r.log.Error().Err(err).Msg("present failed")
		return err
	}

	elapsed := time.Since(start)
	r.mu.Lock()
	r.stats.Frames++
	r.stats.LastDuration = elapsed
	r.stats.LastClip = clip
	r.stats.TotalClipped += clip.Clipped
	frames := r.stats.Frames
	r.mu.Unlock()

	r.log.Trace().
		Uint64("frame", frames).
		Dur("elapsed", elapsed).
		Msg("frame presented")
	return nil
}

// Close shows the cursor again if Draw hid it. It does not shut the
// backend down.
func (r *Renderer) Close() {
	if r.cursorHidden {
		r.backend.ShowCursor()
		r.cursorHidden = false
	}
}

// Stats returns a snapshot of drawing statistics.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Serialize resets and renders c, then returns its encoded grid without
// any cursor positioning.
func Serialize(c *Canvas) string {
	c.Reset()
	c.Render()
	return c.grid.String()
}

// Draw renders c and writes it to w: a cursor move to c's position
// followed by the encoded grid. w is flushed if it supports flushing.
func Draw(w io.Writer, c *Canvas) error {
	if c == nil {
		return ErrNilView
	}
	var sb strings.Builder
	sb.WriteString(ansi.CursorPosition(c.y+1, c.x+1))
	sb.WriteString(Serialize(c))
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
