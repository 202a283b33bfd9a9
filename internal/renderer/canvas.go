package renderer

import (
	"github.com/dshills/termgrid/internal/renderer/core"
)

// Border glyphs.
const (
	BorderTopLeft     = '┌'
	BorderTopRight    = '┐'
	BorderBottomLeft  = '└'
	BorderBottomRight = '┘'
	BorderHorizontal  = '─'
	BorderVertical    = '│'
)

// CanvasConfig configures a Canvas.
type CanvasConfig struct {
	// X and Y position the canvas: on the terminal for a root canvas, inside
	// the parent's active area for a nested one.
	X, Y   int
	Width  int
	Height int
	// Border draws a one-cell frame around the active area.
	Border      bool
	BorderStyle core.Style
}

// Canvas owns a pixel grid, an optional border and an ordered list of
// children. The active region is the whole grid, or its interior when the
// border is on. Children are composited into the active region in
// insertion order, so later children overwrite earlier ones.
type Canvas struct {
	width, height int
	x, y          int
	border        bool
	borderStyle   core.Style
	grid          *core.Grid
	active        core.Region
	children      []View
}

// NewCanvas creates a canvas. Its size must be positive and fit inside
// term; a bordered canvas needs at least 2 cells on each side.
func NewCanvas(cfg CanvasConfig, term core.Size) (*Canvas, error) {
	if err := checkDimensions(cfg.Width, cfg.Height, cfg.Border, term); err != nil {
		return nil, err
	}
	c := &Canvas{
		width:       cfg.Width,
		height:      cfg.Height,
		x:           cfg.X,
		y:           cfg.Y,
		border:      cfg.Border,
		borderStyle: cfg.BorderStyle,
		grid:        core.NewGrid(cfg.Width, cfg.Height),
	}
	c.paintBorder()
	c.resetActive()
	return c, nil
}

// NewFullscreenCanvas creates a canvas covering the whole terminal at (0, 0).
func NewFullscreenCanvas(term core.Size, border bool) (*Canvas, error) {
	return NewCanvas(CanvasConfig{
		Width:  term.Width,
		Height: term.Height,
		Border: border,
	}, term)
}

func checkDimensions(width, height int, border bool, term core.Size) error {
	derr := &DimensionError{Width: width, Height: height, MaxWidth: term.Width, MaxHeight: term.Height}
	switch {
	case width <= 0 || height <= 0:
		derr.Reason = "size must be positive"
	case !term.Fits(width, height):
		derr.Reason = "larger than terminal"
	case border && (width < 2 || height < 2):
		derr.Reason = "too small for a border"
	default:
		return nil
	}
	return derr
}

func (c *Canvas) resetActive() {
	if !c.border {
		c.active = c.grid.Full()
		return
	}
	// Dimensions were checked; the interior always fits.
	c.active, _ = c.grid.Region(1, 1, c.width-2, c.height-2)
}

// paintBorder draws the frame when the border is on, and clears the edge
// cells otherwise.
func (c *Canvas) paintBorder() {
	w, h := c.width, c.height
	edge := func(x, y int, glyph rune) {
		p := c.grid.GetMut(x, y)
		if p == nil {
			return
		}
		if c.border {
			*p = core.NewPixel(glyph, c.borderStyle)
		} else {
			*p = core.DefaultPixel()
		}
	}
	for x := 1; x < w-1; x++ {
		edge(x, 0, BorderHorizontal)
		edge(x, h-1, BorderHorizontal)
	}
	for y := 1; y < h-1; y++ {
		edge(0, y, BorderVertical)
		edge(w-1, y, BorderVertical)
	}
	edge(0, 0, BorderTopLeft)
	edge(w-1, 0, BorderTopRight)
	edge(0, h-1, BorderBottomLeft)
	edge(w-1, h-1, BorderBottomRight)
}

// ToggleBorder flips the border. Turning it on overwrites the edge cells;
// turning it off clears them. Interior content is kept either way.
func (c *Canvas) ToggleBorder() error {
	if !c.border && (c.width < 2 || c.height < 2) {
		return &DimensionError{
			Width: c.width, Height: c.height,
			MaxWidth: c.width, MaxHeight: c.height,
			Reason: "too small for a border",
		}
	}
	c.border = !c.border
	c.paintBorder()
	c.resetActive()
	return nil
}

// SetBorder turns the border on or off. Setting the current state only
// repaints.
func (c *Canvas) SetBorder(on bool) error {
	if on == c.border {
		if on {
			c.paintBorder()
		}
		return nil
	}
	return c.ToggleBorder()
}

// UpdateBorderStyle changes the border style and repaints the frame if
// the border is on.
func (c *Canvas) UpdateBorderStyle(style core.Style) {
	c.borderStyle = style
	if c.border {
		c.paintBorder()
	}
}

// Append adds v after the existing children. A canvas cannot be appended
// to itself or to any of its descendants.
func (c *Canvas) Append(v View) error {
	if isNilView(v) {
		return ErrNilView
	}
	if child, ok := v.(*Canvas); ok && (child == c || child.contains(c)) {
		return ErrViewCycle
	}
	c.children = append(c.children, v)
	return nil
}

func (c *Canvas) contains(target *Canvas) bool {
	for _, v := range c.children {
		if child, ok := v.(*Canvas); ok {
			if child == target || child.contains(target) {
				return true
			}
		}
	}
	return false
}

// Remove detaches and returns the first child equal to v (see ViewEqual).
func (c *Canvas) Remove(v View) (View, error) {
	for i, child := range c.children {
		if child == v || ViewEqual(child, v) {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return child, nil
		}
	}
	return nil, ErrChildNotFound
}

// Get returns the child at index i.
func (c *Canvas) Get(i int) (View, error) {
	if i < 0 || i >= len(c.children) {
		return nil, ErrChildIndex
	}
	return c.children[i], nil
}

// Children returns the children in draw order.
func (c *Canvas) Children() []View {
	out := make([]View, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of children.
func (c *Canvas) Len() int {
	return len(c.children)
}

// Reset fills the active region with the default pixel. The border is
// left alone.
func (c *Canvas) Reset() {
	c.active.Fill(core.DefaultPixel())
}

// Render composites every child into the active region and returns how
// many cells were written and clipped, nested canvases included. Nested
// canvases are reset and rendered before being copied in. Render does not
// reset c itself.
func (c *Canvas) Render() core.ClipStats {
	var stats core.ClipStats
	for _, v := range c.children {
		switch child := v.(type) {
		case *Text:
			stats = stats.Add(c.active.Blit(child.x, child.y, child.rows))
		case *Canvas:
			child.Reset()
			stats = stats.Add(child.Render())
			stats = stats.Add(c.active.BlitGrid(child.x, child.y, child.grid))
		}
	}
	return stats
}

// Width returns the full grid width, border included.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the full grid height, border included.
func (c *Canvas) Height() int {
	return c.height
}

// ActiveWidth returns the width children can draw into.
func (c *Canvas) ActiveWidth() int {
	return c.active.Width()
}

// ActiveHeight returns the height children can draw into.
func (c *Canvas) ActiveHeight() int {
	return c.active.Height()
}

// Position returns the canvas offset.
func (c *Canvas) Position() (x, y int) {
	return c.x, c.y
}

// MoveTo sets the canvas offset.
func (c *Canvas) MoveTo(x, y int) {
	c.x, c.y = x, y
}

// HasBorder reports whether the border is on.
func (c *Canvas) HasBorder() bool {
	return c.border
}

// BorderStyle returns the border style.
func (c *Canvas) BorderStyle() core.Style {
	return c.borderStyle
}

// Grid returns the backing grid. Writes through it are visible to the
// canvas; the active region is cleared on every draw.
func (c *Canvas) Grid() *core.Grid {
	return c.grid
}

// Active returns the window children are drawn into.
func (c *Canvas) Active() core.Region {
	return c.active
}

// String returns the serialized grid as it currently stands.
func (c *Canvas) String() string {
	return c.grid.String()
}

// Equals compares geometry, border, grid content and children.
func (c *Canvas) Equals(other *Canvas) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if c.width != other.width || c.height != other.height ||
		c.x != other.x || c.y != other.y ||
		c.border != other.border || !c.borderStyle.Equals(other.borderStyle) {
		return false
	}
	if !c.grid.Equals(other.grid) || len(c.children) != len(other.children) {
		return false
	}
	for i := range c.children {
		if !ViewEqual(c.children[i], other.children[i]) {
			return false
		}
	}
	return true
}

func (c *Canvas) isView() {}
