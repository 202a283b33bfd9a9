package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionWritesThrough(t *testing.T) {
	g := NewGrid(5, 4)
	r, err := g.Region(1, 1, 3, 2)
	require.NoError(t, err)

	p := NewPixel('@', NewStyle(ColorMagenta, ContextForeground))
	require.NoError(t, r.Set(0, 0, p))

	got, ok := g.Get(1, 1)
	require.True(t, ok)
	assert.True(t, got.Equals(p), "region write must be visible through the grid")

	q := NewPixel('%', DefaultStyle())
	require.NoError(t, g.Set(3, 2, q))
	got, ok = r.Get(2, 1)
	require.True(t, ok)
	assert.True(t, got.Equals(q), "grid write must be visible through the region")

	mut := r.GetMut(1, 0)
	require.NotNil(t, mut)
	*mut = q
	got, _ = g.Get(2, 1)
	assert.True(t, got.Equals(q))
}

func TestRegionBounds(t *testing.T) {
	g := NewGrid(5, 4)
	r, err := g.Region(1, 1, 3, 2)
	require.NoError(t, err)

	_, ok := r.Get(3, 0)
	assert.False(t, ok)
	_, ok = r.Get(-1, 0)
	assert.False(t, ok)
	assert.ErrorIs(t, r.Set(0, 2, DefaultPixel()), ErrOutOfBounds)
	assert.Nil(t, r.GetMut(0, 5))
}

func TestGridRegionValidation(t *testing.T) {
	g := NewGrid(5, 4)
	bad := [][4]int{{-1, 0, 1, 1}, {0, 0, 6, 1}, {4, 0, 2, 1}, {0, 3, 1, 2}, {0, 0, -1, 1}}
	for _, b := range bad {
		_, err := g.Region(b[0], b[1], b[2], b[3])
		assert.ErrorIs(t, err, ErrInvalidRegion, "%v", b)
	}

	full := g.Full()
	assert.Equal(t, 5, full.Width())
	assert.Equal(t, 4, full.Height())
}

func TestRegionFillOnlyTouchesWindow(t *testing.T) {
	g := NewGrid(4, 3)
	r, err := g.Region(1, 1, 2, 1)
	require.NoError(t, err)

	r.Fill(NewPixel('x', DefaultStyle()))
	assert.Equal(t, "    \n xx \n    ", g.Symbols())
}

func TestRegionSub(t *testing.T) {
	g := NewGrid(6, 6)
	outer, err := g.Region(1, 1, 4, 4)
	require.NoError(t, err)
	inner, err := outer.Sub(1, 1, 2, 2)
	require.NoError(t, err)

	left, top := inner.Origin()
	assert.Equal(t, 2, left)
	assert.Equal(t, 2, top)

	require.NoError(t, inner.Set(1, 1, NewPixel('!', DefaultStyle())))
	p, _ := g.Get(3, 3)
	assert.Equal(t, '!', p.Symbol)

	_, err = outer.Sub(3, 3, 2, 2)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestRegionStaleAfterResize(t *testing.T) {
	g := NewGrid(4, 4)
	r, err := g.Region(1, 1, 2, 2)
	require.NoError(t, err)
	require.True(t, r.Valid())

	g.Resize(2, 2)
	assert.False(t, r.Valid())
	_, ok := r.Get(0, 0)
	assert.False(t, ok)
	assert.ErrorIs(t, r.Set(0, 0, DefaultPixel()), ErrStaleRegion)
	assert.Nil(t, r.Row(0))

	_, err = r.Sub(0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrStaleRegion)
}

func TestRegionBlitClips(t *testing.T) {
	g := NewGrid(4, 3)
	r, err := g.Region(1, 1, 2, 2)
	require.NoError(t, err)

	px := func(c rune) Pixel { return NewPixel(c, DefaultStyle()) }
	rows := [][]Pixel{
		{px('a'), px('b'), px('c')},
		{px('d')},
		{px('e')},
	}

	stats := r.Blit(0, 0, rows)
	assert.Equal(t, ClipStats{Written: 3, Clipped: 2}, stats)
	assert.Equal(t, "    \n ab \n d  ", g.Symbols())

	stats = r.Blit(-1, 1, [][]Pixel{{px('x'), px('y')}})
	assert.Equal(t, ClipStats{Written: 1, Clipped: 1}, stats)
	assert.Equal(t, "    \n ab \n y  ", g.Symbols())
}

func TestRegionBlitGrid(t *testing.T) {
	dst := NewGrid(4, 3)
	src := NewGrid(2, 2)
	src.Fill(NewPixel('#', DefaultStyle()))

	stats := dst.Full().BlitGrid(3, 1, src)
	assert.Equal(t, ClipStats{Written: 2, Clipped: 2}, stats)
	assert.Equal(t, "    \n   #\n   #", dst.Symbols())

	assert.Equal(t, ClipStats{Written: 3, Clipped: 1}, stats.Add(ClipStats{Written: 1, Clipped: -1}))
}

func TestZeroRegion(t *testing.T) {
	var r Region
	assert.False(t, r.Valid())
	_, ok := r.Get(0, 0)
	assert.False(t, ok)
	assert.ErrorIs(t, r.Set(0, 0, DefaultPixel()), ErrOutOfBounds)
	r.Fill(DefaultPixel())
	assert.Equal(t, ClipStats{Clipped: 1}, r.Blit(0, 0, [][]Pixel{{DefaultPixel()}}))
}
