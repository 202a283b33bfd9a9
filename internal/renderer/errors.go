package renderer

import (
	"errors"
	"fmt"
)

// Sentinel errors for scene construction and drawing.
var (
	ErrDimension           = errors.New("invalid canvas dimensions")
	ErrDegenerateWrapWidth = errors.New("wrap width must be positive")
	ErrChildNotFound       = errors.New("child view not found")
	ErrChildIndex          = errors.New("child index out of range")
	ErrViewCycle           = errors.New("view would contain itself")
	ErrViewKind            = errors.New("unexpected view kind")
	ErrNilView             = errors.New("nil view")
	ErrRenderInProgress    = errors.New("render already in progress")
)

// DimensionError describes a canvas size that cannot be built.
type DimensionError struct {
	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
	Reason    string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("canvas %dx%d (terminal %dx%d): %s",
		e.Width, e.Height, e.MaxWidth, e.MaxHeight, e.Reason)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimension
}
