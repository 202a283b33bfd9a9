package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termgrid/internal/renderer/core"
)

func newSimTerminal(t *testing.T, width, height int) *Terminal {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	require.NoError(t, term.Init())
	sim.SetSize(width, height)
	t.Cleanup(term.Shutdown)
	return term
}

func TestTerminalPresentMatchesGrid(t *testing.T) {
	term := newSimTerminal(t, 20, 5)

	size, err := term.Size()
	require.NoError(t, err)
	assert.Equal(t, core.Size{Width: 20, Height: 5}, size)

	g := testGrid(t)
	require.NoError(t, term.Present(Frame{X: 3, Y: 1, Grid: g}))

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			want, _ := g.Get(x, y)
			got := term.Pixel(3+x, 1+y)
			assert.Equal(t, want.Symbol, got.Symbol, "cell (%d, %d)", x, y)
			assert.True(t, want.Style.Equals(got.Style), "cell (%d, %d): want %s, got %s", x, y, want.Style, got.Style)
		}
	}
}

func TestTerminalPresentClipsAtScreenEdge(t *testing.T) {
	term := newSimTerminal(t, 4, 2)

	g := core.NewGrid(3, 3)
	g.Fill(core.NewPixel('#', core.DefaultStyle()))
	require.NoError(t, term.Present(Frame{X: 2, Y: 1, Grid: g}))

	assert.Equal(t, '#', term.Pixel(3, 1).Symbol)
	assert.NotEqual(t, '#', term.Pixel(1, 1).Symbol)
}

func TestConvertColorRoundTrip(t *testing.T) {
	colors := []core.Color{
		core.ColorDefault,
		core.ColorCyan,
		core.IndexedColor(202),
		core.RGBColor(12, 34, 56),
	}
	for _, c := range colors {
		t.Run(c.String(), func(t *testing.T) {
			got := convertTcellColor(convertColor(c))
			assert.True(t, c.Equals(got), "want %s, got %s", c, got)
		})
	}
}
