package renderer

import (
	"github.com/dshills/termgrid/internal/renderer/core"
)

// TextConfig configures a Text view.
type TextConfig struct {
	// X and Y are the offset of the first row inside the parent's active area.
	X, Y int
	// Content is copied; later changes to the slice do not affect the view.
	Content []core.Pixel
	// WrapWidth is the maximum row length. It must be positive.
	WrapWidth int
}

// Text is a run of pixels broken into rows of at most WrapWidth pixels.
// Every row but the last is exactly the effective width.
type Text struct {
	pixels    []core.Pixel
	wrapWidth int
	effective int
	rows      [][]core.Pixel
	x, y      int
}

// NewText creates a text view from cfg.
func NewText(cfg TextConfig) (*Text, error) {
	if cfg.WrapWidth <= 0 {
		return nil, ErrDegenerateWrapWidth
	}
	t := &Text{
		pixels:    clonePixels(cfg.Content),
		wrapWidth: cfg.WrapWidth,
		x:         cfg.X,
		y:         cfg.Y,
	}
	t.wrap()
	return t, nil
}

// TextFromString builds a single-row text from s, every glyph in style.
// The wrap width is the glyph count, so the text never wraps until resized.
func TextFromString(s string, style core.Style, x, y int) (*Text, error) {
	pixels, err := core.PixelsFromString(s, style)
	if err != nil {
		return nil, err
	}
	return NewText(TextConfig{
		X:         x,
		Y:         y,
		Content:   pixels,
		WrapWidth: max(len(pixels), 1),
	})
}

func (t *Text) wrap() {
	t.effective = min(t.wrapWidth, len(t.pixels))
	t.rows = t.rows[:0]
	if t.effective == 0 {
		t.rows = nil
		return
	}
	for start := 0; start < len(t.pixels); start += t.effective {
		end := min(start+t.effective, len(t.pixels))
		t.rows = append(t.rows, t.pixels[start:end:end])
	}
}

// Update replaces the content and re-wraps it at the current wrap width.
func (t *Text) Update(pixels []core.Pixel) {
	t.pixels = clonePixels(pixels)
	t.wrap()
}

// UpdateString replaces the content with s in a single style.
func (t *Text) UpdateString(s string, style core.Style) error {
	pixels, err := core.PixelsFromString(s, style)
	if err != nil {
		return err
	}
	t.pixels = pixels
	t.wrap()
	return nil
}

// Resize changes the wrap width and returns the effective width, which is
// clamped to the content length.
func (t *Text) Resize(width int) (int, error) {
	if width <= 0 {
		return t.effective, ErrDegenerateWrapWidth
	}
	t.wrapWidth = width
	t.wrap()
	return t.effective, nil
}

// MoveTo sets the offset inside the parent's active area.
func (t *Text) MoveTo(x, y int) {
	t.x, t.y = x, y
}

// Position returns the offset inside the parent's active area.
func (t *Text) Position() (x, y int) {
	return t.x, t.y
}

// Width returns the effective row width.
func (t *Text) Width() int {
	return t.effective
}

// Height returns the number of wrapped rows.
func (t *Text) Height() int {
	return len(t.rows)
}

// WrapWidth returns the configured wrap width.
func (t *Text) WrapWidth() int {
	return t.wrapWidth
}

// Len returns the number of pixels.
func (t *Text) Len() int {
	return len(t.pixels)
}

// Rows returns a copy of the wrapped rows.
func (t *Text) Rows() [][]core.Pixel {
	rows := make([][]core.Pixel, len(t.rows))
	for i, r := range t.rows {
		rows[i] = clonePixels(r)
	}
	return rows
}

// Pixels returns a copy of the content.
func (t *Text) Pixels() []core.Pixel {
	return clonePixels(t.pixels)
}

// String returns the content's symbols without styling.
func (t *Text) String() string {
	return core.StringFromPixels(t.pixels)
}

// Lines returns the symbols of each wrapped row.
func (t *Text) Lines() []string {
	lines := make([]string, len(t.rows))
	for i, r := range t.rows {
		lines[i] = core.StringFromPixels(r)
	}
	return lines
}

// Equals compares content, wrap width and position.
func (t *Text) Equals(other *Text) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.wrapWidth != other.wrapWidth || t.x != other.x || t.y != other.y {
		return false
	}
	if len(t.pixels) != len(other.pixels) {
		return false
	}
	for i := range t.pixels {
		if !t.pixels[i].Equals(other.pixels[i]) {
			return false
		}
	}
	return true
}

func (t *Text) isView() {}

func clonePixels(p []core.Pixel) []core.Pixel {
	if len(p) == 0 {
		return nil
	}
	out := make([]core.Pixel, len(p))
	copy(out, p)
	return out
}
