package core

import "fmt"

// Region is a non-owning rectangular window into a Grid.
//
// A region stores only offsets and a handle to the grid; every access
// computes the linear index into the grid's storage, so writes through a
// region are visible through the grid and through any overlapping region.
// A region taken before the grid was resized is stale: reads report
// nothing and writes fail with ErrStaleRegion.
type Region struct {
	grid          *Grid
	left, top     int
	width, height int
	gen           uint64
}

// ClipStats reports the outcome of a blit.
type ClipStats struct {
	Written int // Cells copied into the region
	Clipped int // Cells that fell outside the region and were dropped
}

// Add accumulates another blit's counts.
func (s ClipStats) Add(other ClipStats) ClipStats {
	return ClipStats{Written: s.Written + other.Written, Clipped: s.Clipped + other.Clipped}
}

// Width returns the number of columns in the region.
func (r Region) Width() int {
	return r.width
}

// Height returns the number of rows in the region.
func (r Region) Height() int {
	return r.height
}

// Origin returns the region's top-left corner in grid coordinates.
func (r Region) Origin() (left, top int) {
	return r.left, r.top
}

// Grid returns the grid the region indexes into.
func (r Region) Grid() *Grid {
	return r.grid
}

// Valid reports whether the region still describes its grid's storage.
func (r Region) Valid() bool {
	return r.grid != nil && r.gen == r.grid.gen
}

func (r Region) index(x, y int) (int, bool) {
	if !r.Valid() || x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0, false
	}
	return (r.top+y)*r.grid.width + r.left + x, true
}

// Get returns the pixel at region coordinates (x, y).
func (r Region) Get(x, y int) (Pixel, bool) {
	i, ok := r.index(x, y)
	if !ok {
		return Pixel{}, false
	}
	return r.grid.cells[i], true
}

// GetMut returns a pointer to the grid cell at region coordinates (x, y),
// or nil when outside the region.
func (r Region) GetMut(x, y int) *Pixel {
	i, ok := r.index(x, y)
	if !ok {
		return nil
	}
	return &r.grid.cells[i]
}

// Set replaces the pixel at region coordinates (x, y).
func (r Region) Set(x, y int, p Pixel) error {
	if r.grid != nil && !r.Valid() {
		return ErrStaleRegion
	}
	i, ok := r.index(x, y)
	if !ok {
		return &OutOfBoundsError{X: x, Y: y, Width: r.width, Height: r.height}
	}
	r.grid.cells[i] = p
	return nil
}

// Fill replaces every cell in the region with p.
func (r Region) Fill(p Pixel) {
	if !r.Valid() {
		return
	}
	for y := 0; y < r.height; y++ {
		start := (r.top+y)*r.grid.width + r.left
		row := r.grid.cells[start : start+r.width]
		for x := range row {
			row[x] = p
		}
	}
}

// Row returns a copy of row y of the region.
func (r Region) Row(y int) []Pixel {
	if !r.Valid() || y < 0 || y >= r.height {
		return nil
	}
	start := (r.top+y)*r.grid.width + r.left
	row := make([]Pixel, r.width)
	copy(row, r.grid.cells[start:start+r.width])
	return row
}

// Rows returns a copy of every row.
func (r Region) Rows() [][]Pixel {
	rows := make([][]Pixel, 0, r.height)
	for y := 0; y < r.height; y++ {
		rows = append(rows, r.Row(y))
	}
	return rows
}

// Sub returns a window of this region, sharing the same grid.
func (r Region) Sub(left, top, width, height int) (Region, error) {
	if !r.Valid() {
		return Region{}, ErrStaleRegion
	}
	if left < 0 || top < 0 || width < 0 || height < 0 ||
		left+width > r.width || top+height > r.height {
		return Region{}, fmt.Errorf("%w: %dx%d at (%d, %d) in %dx%d region",
			ErrInvalidRegion, width, height, left, top, r.width, r.height)
	}
	return Region{
		grid:   r.grid,
		left:   r.left + left,
		top:    r.top + top,
		width:  width,
		height: height,
		gen:    r.gen,
	}, nil
}

// Blit copies rows into the region with their top-left corner at (x, y).
// Rows may be ragged. Cells landing outside the region are clipped.
func (r Region) Blit(x, y int, rows [][]Pixel) ClipStats {
	var stats ClipStats
	for dy, row := range rows {
		for dx, p := range row {
			if i, ok := r.index(x+dx, y+dy); ok {
				r.grid.cells[i] = p
				stats.Written++
			} else {
				stats.Clipped++
			}
		}
	}
	return stats
}

// BlitGrid copies an entire grid into the region at (x, y), clipping.
func (r Region) BlitGrid(x, y int, src *Grid) ClipStats {
	var stats ClipStats
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			if i, ok := r.index(x+sx, y+sy); ok {
				r.grid.cells[i] = src.cells[sy*src.width+sx]
				stats.Written++
			} else {
				stats.Clipped++
			}
		}
	}
	return stats
}
