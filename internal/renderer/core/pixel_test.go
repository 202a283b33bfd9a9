package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPixel(t *testing.T) {
	p := DefaultPixel()
	assert.Equal(t, ' ', p.Symbol)
	assert.True(t, p.Style.IsDefault())
}

func TestPixelWith(t *testing.T) {
	red := NewStyle(ColorRed, ContextForeground)
	p := NewPixel('A', DefaultStyle())

	q := p.WithStyle(red).WithSymbol('B')
	assert.Equal(t, 'A', p.Symbol, "original must be unchanged")
	assert.Equal(t, 'B', q.Symbol)
	assert.True(t, q.Style.Equals(red))
	assert.False(t, p.Equals(q))
	assert.True(t, q.Equals(NewPixel('B', red)))
}

func TestPixelFormat(t *testing.T) {
	red := NewStyle(ColorRed, ContextForeground)
	assert.Equal(t, "\x1b[31mX", NewPixel('X', red).Format(DefaultStyle()))
	assert.Equal(t, "X", NewPixel('X', red).Format(red))
}

func TestPixelsFromString(t *testing.T) {
	style := NewStyle(ColorGreen, ContextForeground)
	pixels, err := PixelsFromString("hé─█", style)
	require.NoError(t, err)
	require.Len(t, pixels, 4)
	assert.Equal(t, 'é', pixels[1].Symbol)
	assert.Equal(t, '─', pixels[2].Symbol)
	for _, p := range pixels {
		assert.True(t, p.Style.Equals(style))
	}
	assert.Equal(t, "hé─█", StringFromPixels(pixels))
}

func TestPixelsFromStringEmpty(t *testing.T) {
	pixels, err := PixelsFromString("", DefaultStyle())
	require.NoError(t, err)
	assert.Empty(t, pixels)
}

func TestPixelsFromStringRejectsInvalidGlyphs(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
	}{
		{"wide", "ab漢", 2},
		{"control", "a\tb", 1},
		{"newline", "\n", 0},
		{"combining", "e\u0301x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PixelsFromString(tt.in, DefaultStyle())
			require.ErrorIs(t, err, ErrInvalidGlyph)

			var gerr *GlyphError
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.offset, gerr.Offset)
		})
	}
}
