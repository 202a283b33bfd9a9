package core

import (
	"errors"
	"fmt"
)

// Errors returned by core operations.
var (
	// ErrOutOfBounds indicates a coordinate outside a grid or region.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidRegion indicates a region that does not fit its grid.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrStaleRegion indicates a region whose grid was resized after the
	// region was taken.
	ErrStaleRegion = errors.New("region refers to a resized grid")

	// ErrInvalidGlyph indicates a symbol that does not occupy exactly one
	// terminal column.
	ErrInvalidGlyph = errors.New("glyph is not a single printable column")

	// ErrInvalidColor indicates a color that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
)

// OutOfBoundsError describes a rejected coordinate.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: (%d, %d); expected 0 <= x < %d and 0 <= y < %d",
		e.X, e.Y, e.Width, e.Height)
}

// Unwrap returns ErrOutOfBounds.
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// GlyphError describes a rejected grapheme cluster.
type GlyphError struct {
	Offset  int    // Byte offset in the source string
	Cluster string // The offending grapheme cluster
	Width   int    // Its display width
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("glyph %q at offset %d has width %d", e.Cluster, e.Offset, e.Width)
}

// Unwrap returns ErrInvalidGlyph.
func (e *GlyphError) Unwrap() error {
	return ErrInvalidGlyph
}
