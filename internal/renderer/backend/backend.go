// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"errors"
	"sync"

	"github.com/dshills/termgrid/internal/renderer/core"
)

// ErrNoTerminal is returned when output is not attached to a terminal or
// the terminal size cannot be determined.
var ErrNoTerminal = errors.New("not a terminal")

// Frame is one finished canvas grid, to be shown with its top-left corner
// at (X, Y) on the terminal.
type Frame struct {
	X, Y int
	Grid *core.Grid
}

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// Must be called when done with the backend.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (core.Size, error)

	// Present writes a whole frame and flushes it to the display.
	Present(frame Frame) error

	// Clear clears the entire screen with the default style.
	Clear() error

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// HideCursor hides the cursor.
	HideCursor()
}

// NullBackend is an in-memory backend for testing. It keeps a copy of
// every presented frame.
type NullBackend struct {
	mu            sync.Mutex
	size          core.Size
	frames        []Frame
	cursorVisible bool
	initialized   bool
	presentErr    error
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		size:          core.Size{Width: width, Height: height},
		cursorVisible: true,
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
	b.cursorVisible = true
}

func (b *NullBackend) Size() (core.Size, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size, nil
}

func (b *NullBackend) Present(frame Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.presentErr != nil {
		return b.presentErr
	}
	b.frames = append(b.frames, Frame{X: frame.X, Y: frame.Y, Grid: frame.Grid.Clone()})
	return nil
}

func (b *NullBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = nil
	return nil
}

func (b *NullBackend) ShowCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

// Frames returns the frames presented since the last Clear.
func (b *NullBackend) Frames() []Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Frame, len(b.frames))
	copy(out, b.frames)
	return out
}

// LastFrame returns the most recent frame, if any.
func (b *NullBackend) LastFrame() (Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return Frame{}, false
	}
	return b.frames[len(b.frames)-1], true
}

// CursorVisible reports the cursor state for testing.
func (b *NullBackend) CursorVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorVisible
}

// Initialized reports whether Init was called without a later Shutdown.
func (b *NullBackend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// FailPresent makes every following Present return err. Pass nil to stop.
func (b *NullBackend) FailPresent(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentErr = err
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = core.Size{Width: width, Height: height}
}
