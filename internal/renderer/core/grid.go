package core

import (
	"fmt"
	"strings"
)

// Grid is a fixed-size arena of pixel cells stored row-major in one slice.
// It is the only owner of cell storage; Regions index into it.
type Grid struct {
	cells  []Pixel
	width  int
	height int
	// gen changes on every Resize so that outstanding regions can detect
	// that their offsets no longer describe this storage.
	gen uint64
}

// NewGrid creates a grid filled with the default pixel.
// Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.allocate(width, height)
	return g
}

func (g *Grid) allocate(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if width == 0 || height == 0 {
		width, height = 0, 0
	}
	g.width = width
	g.height = height
	g.cells = make([]Pixel, width*height)
	fill := DefaultPixel()
	for i := range g.cells {
		g.cells[i] = fill
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

// Get returns the pixel at (x, y). The bool is false outside the grid.
func (g *Grid) Get(x, y int) (Pixel, bool) {
	i, ok := g.index(x, y)
	if !ok {
		return Pixel{}, false
	}
	return g.cells[i], true
}

// GetMut returns a pointer to the cell at (x, y), or nil outside the grid.
// The pointer is valid until the next Resize.
func (g *Grid) GetMut(x, y int) *Pixel {
	i, ok := g.index(x, y)
	if !ok {
		return nil
	}
	return &g.cells[i]
}

// Set replaces the pixel at (x, y).
func (g *Grid) Set(x, y int, p Pixel) error {
	i, ok := g.index(x, y)
	if !ok {
		return &OutOfBoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	g.cells[i] = p
	return nil
}

// Fill replaces every cell with p.
func (g *Grid) Fill(p Pixel) {
	for i := range g.cells {
		g.cells[i] = p
	}
}

// Resize reallocates the grid. All prior content is discarded and every
// cell becomes the default pixel. Regions taken before the call become
// stale.
func (g *Grid) Resize(width, height int) {
	g.allocate(width, height)
	g.gen++
}

// Row returns a copy of row y, or nil outside the grid.
func (g *Grid) Row(y int) []Pixel {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]Pixel, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Full returns a region covering the whole grid.
func (g *Grid) Full() Region {
	return Region{grid: g, width: g.width, height: g.height, gen: g.gen}
}

// Region returns a window of the grid. The window must lie inside the grid.
func (g *Grid) Region(left, top, width, height int) (Region, error) {
	if left < 0 || top < 0 || width < 0 || height < 0 ||
		left+width > g.width || top+height > g.height {
		return Region{}, fmt.Errorf("%w: %dx%d at (%d, %d) in %dx%d grid",
			ErrInvalidRegion, width, height, left, top, g.width, g.height)
	}
	return Region{grid: g, left: left, top: top, width: width, height: height, gen: g.gen}, nil
}

// Equals returns true if both grids have the same size and cells.
func (g *Grid) Equals(other *Grid) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil {
		return false
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if !g.cells[i].Equals(other.cells[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Pixel, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// String returns the serialized grid (see Encode).
func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Encode(&sb)
	return sb.String()
}

// Symbols returns the grid's symbols only, rows joined by newlines.
func (g *Grid) Symbols() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, p := range g.cells[y*g.width : (y+1)*g.width] {
			sb.WriteRune(p.Symbol)
		}
	}
	return sb.String()
}
