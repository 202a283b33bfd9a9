package backend

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/dshills/termgrid/internal/renderer/ansi"
	"github.com/dshills/termgrid/internal/renderer/core"
)

// StreamOptions configures a Stream backend.
type StreamOptions struct {
	// RequireTTY makes Init fail with ErrNoTerminal unless the writer is a
	// terminal.
	RequireTTY bool
	// Size overrides the terminal size query when non-zero.
	Size core.Size
	// AddressRows moves the cursor to the start of every row instead of
	// separating rows with newlines. Use it when frames are not drawn at
	// column 0 or the terminal is in raw mode.
	AddressRows bool
	// BufferSize is the write buffer size. Zero means 64 KiB.
	BufferSize int
}

type fder interface {
	Fd() uintptr
}

// Stream writes frames as ANSI escape sequences to an io.Writer.
type Stream struct {
	mu   sync.Mutex
	buf  *bufio.Writer
	fd   int
	opts StreamOptions
}

// NewStream creates a stream backend on w. If w is an *os.File (or
// anything with an Fd method) its descriptor is used for size queries.
func NewStream(w io.Writer, opts StreamOptions) *Stream {
	size := opts.BufferSize
	if size <= 0 {
		size = 64 * 1024
	}
	s := &Stream{
		buf:  bufio.NewWriterSize(w, size),
		fd:   -1,
		opts: opts,
	}
	if f, ok := w.(fder); ok {
		s.fd = int(f.Fd())
	}
	return s
}

func (s *Stream) Init() error {
	if s.opts.RequireTTY && (s.fd < 0 || !term.IsTerminal(s.fd)) {
		return fmt.Errorf("stream output: %w", ErrNoTerminal)
	}
	return nil
}

// Shutdown resets attributes and shows the cursor.
func (s *Stream) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteString(ansi.ResetAll)
	s.buf.WriteString(ansi.CursorShow)
	_ = s.buf.Flush()
}

func (s *Stream) Size() (core.Size, error) {
	if !s.opts.Size.IsZero() {
		return s.opts.Size, nil
	}
	if s.fd < 0 {
		return core.Size{}, ErrNoTerminal
	}
	return TerminalSize(s.fd)
}

// Present moves the cursor to the frame origin, writes the encoded grid,
// resets attributes and flushes.
func (s *Stream) Present(frame Frame) error {
	if frame.Grid == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	last := core.DefaultStyle()
	if s.opts.AddressRows {
		for y := 0; y < frame.Grid.Height(); y++ {
			ansi.WriteCursorPosition(s.buf, frame.X, frame.Y+y)
			last = frame.Grid.EncodeRow(s.buf, y, last)
		}
	} else {
		ansi.WriteCursorPosition(s.buf, frame.X, frame.Y)
		last = frame.Grid.EncodeFrom(s.buf, last)
	}
	if !last.IsDefault() {
		s.buf.WriteString(ansi.ResetAll)
	}
	return s.buf.Flush()
}

func (s *Stream) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteString(ansi.ClearScreen)
	s.buf.WriteString(ansi.Home)
	return s.buf.Flush()
}

func (s *Stream) ShowCursor() {
	s.writeNow(ansi.CursorShow)
}

func (s *Stream) HideCursor() {
	s.writeNow(ansi.CursorHide)
}

func (s *Stream) writeNow(seq string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteString(seq)
	_ = s.buf.Flush()
}

// TerminalSize returns the size of the terminal behind fd.
func TerminalSize(fd int) (core.Size, error) {
	w, h, err := term.GetSize(fd)
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}
	if w <= 0 || h <= 0 {
		return core.Size{}, fmt.Errorf("%w: reported size %dx%d", ErrNoTerminal, w, h)
	}
	return core.Size{Width: w, Height: h}, nil
}
