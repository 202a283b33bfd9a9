package core

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Fill is the symbol of an empty cell.
const Fill = ' '

// Pixel is one glyph cell: a single printable character plus its style.
// Pixels are values; a cell is changed by replacing its Pixel.
type Pixel struct {
	Symbol rune
	Style  Style
}

// DefaultPixel returns a space with the default style.
func DefaultPixel() Pixel {
	return Pixel{Symbol: Fill}
}

// NewPixel creates a pixel with the given symbol and style.
func NewPixel(symbol rune, style Style) Pixel {
	return Pixel{Symbol: symbol, Style: style}
}

// WithStyle returns a copy with the given style.
func (p Pixel) WithStyle(style Style) Pixel {
	p.Style = style
	return p
}

// WithSymbol returns a copy with the given symbol.
func (p Pixel) WithSymbol(symbol rune) Pixel {
	p.Symbol = symbol
	return p
}

// Equals returns true if two pixels are identical.
func (p Pixel) Equals(other Pixel) bool {
	return p.Symbol == other.Symbol && p.Style.Equals(other.Style)
}

// Format returns the symbol prefixed by the escape sequence needed to get
// from prev to this pixel's style.
func (p Pixel) Format(prev Style) string {
	return p.Style.Format(prev) + string(p.Symbol)
}

// PixelsFromString creates a run of pixels sharing one style.
// Every grapheme cluster must be a single rune one column wide; anything
// else (wide CJK, emoji sequences, combining marks, control characters)
// is rejected with a *GlyphError.
func PixelsFromString(s string, style Style) ([]Pixel, error) {
	pixels := make([]Pixel, 0, len(s))
	state := -1
	offset := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)

		runes := []rune(cluster)
		if width != 1 || len(runes) != 1 || runes[0] < 0x20 || runes[0] == 0x7f {
			return nil, &GlyphError{Offset: offset, Cluster: cluster, Width: width}
		}
		pixels = append(pixels, Pixel{Symbol: runes[0], Style: style})
		offset += len(cluster)
	}
	return pixels, nil
}

// StringFromPixels returns the symbols of a pixel run.
func StringFromPixels(pixels []Pixel) string {
	var sb strings.Builder
	sb.Grow(len(pixels))
	for _, p := range pixels {
		sb.WriteRune(p.Symbol)
	}
	return sb.String()
}
