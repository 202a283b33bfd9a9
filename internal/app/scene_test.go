package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termgrid/internal/config"
	"github.com/dshills/termgrid/internal/renderer"
	"github.com/dshills/termgrid/internal/renderer/core"
)

func symbolAt(t *testing.T, g *core.Grid, x, y int) rune {
	t.Helper()
	p, ok := g.Get(x, y)
	require.True(t, ok, "(%d,%d) out of range", x, y)
	return p.Symbol
}

func TestNewSceneLayout(t *testing.T) {
	cfg := config.Default()
	s, err := NewScene(core.Size{Width: 60, Height: 20}, cfg)
	require.NoError(t, err)

	assert.True(t, s.Root.HasBorder())
	assert.Equal(t, 58, s.Root.ActiveWidth())
	assert.Equal(t, 18, s.Root.ActiveHeight())
	require.NotNil(t, s.Status())
	x, y := s.Status().Position()
	assert.Equal(t, 58-statusWidth-1, x)
	assert.Equal(t, 18-statusHeight-1, y)
	assert.Equal(t, 3, s.Root.Len())

	s.Update(4, 0, false)
	assert.Equal(t, 58, s.Field().Width())
	assert.Equal(t, 18, s.Field().Height())

	renderer.Serialize(s.Root)
	g := s.Root.Grid()
	assert.Equal(t, renderer.BorderTopLeft, symbolAt(t, g, 0, 0))
	assert.Equal(t, FieldGlyph, symbolAt(t, g, 1, 1), "field fills the active region")
	assert.Equal(t, 't', symbolAt(t, g, 3, 1), "title is drawn over the field")
	assert.Equal(t, renderer.BorderTopLeft, symbolAt(t, g, 1+x, 1+y), "status box is composited")
	assert.Equal(t, 'f', symbolAt(t, g, 2+x, 2+y))
	assert.Contains(t, s.Root.String(), "frame 4")
}

func TestSceneWithoutRoomForStatus(t *testing.T) {
	s, err := NewScene(core.Size{Width: 12, Height: 4}, config.Default())
	require.NoError(t, err)
	assert.Nil(t, s.Status())
	assert.Equal(t, 2, s.Root.Len())

	s.Update(1, 30, false)
	renderer.Serialize(s.Root)
	assert.Equal(t, 10*2, len(s.Field().Pixels()))
}

func TestSceneApplyTogglesBorder(t *testing.T) {
	cfg := config.Default()
	s, err := NewScene(core.Size{Width: 40, Height: 10}, cfg)
	require.NoError(t, err)

	next := cfg.Canvas
	next.Border = false
	next.Title = "plasma"
	require.NoError(t, s.Apply(next))
	assert.False(t, s.Root.HasBorder())
	assert.Equal(t, 40, s.Root.ActiveWidth())
	assert.Equal(t, 40, s.Field().WrapWidth())

	s.Update(0, 0, false)
	renderer.Serialize(s.Root)
	assert.Equal(t, FieldGlyph, symbolAt(t, s.Root.Grid(), 0, 0))
	assert.Equal(t, 'p', symbolAt(t, s.Root.Grid(), 2, 0))

	next.BorderFg = "not-a-color"
	assert.Error(t, s.Apply(next))
}

func TestSceneDownsamplesBorder(t *testing.T) {
	cfg := config.Default()
	cfg.Render.ColorMode = config.ColorMode256
	s, err := NewScene(core.Size{Width: 30, Height: 8}, cfg)
	require.NoError(t, err)
	assert.Equal(t, core.ColorModeIndexed, s.Root.BorderStyle().Foreground.Mode)

	s.Update(2, 0, false)
	out := renderer.Serialize(s.Root)
	assert.NotContains(t, out, "38;2;")
	assert.Contains(t, out, "38;5;")
}

func TestSceneTooSmallForBorder(t *testing.T) {
	_, err := NewScene(core.Size{Width: 1, Height: 1}, config.Default())
	assert.ErrorIs(t, err, renderer.ErrDimension)

	cfg := config.Default()
	cfg.Canvas.Border = false
	_, err = NewScene(core.Size{Width: 1, Height: 1}, cfg)
	assert.NoError(t, err)
}

func TestSceneInvertsStatusWhenLate(t *testing.T) {
	s, err := NewScene(core.Size{Width: 40, Height: 10}, config.Default())
	require.NoError(t, err)

	line := func() core.Style {
		t.Helper()
		px := s.line.Pixels()
		require.NotEmpty(t, px)
		return px[0].Style
	}

	s.Update(1, 0, false)
	assert.Equal(t, statusStyle, line())

	s.Update(2, 0, true)
	assert.Equal(t, core.NewStyle(core.ColorYellow, core.ContextBackground), line())

	s.Update(3, 0, false)
	assert.Equal(t, statusStyle, line())
}
