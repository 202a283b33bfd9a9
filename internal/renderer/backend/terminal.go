package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termgrid/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (core.Size, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return core.Size{}, ErrNoTerminal
	}
	return core.Size{Width: w, Height: h}, nil
}

// Present copies every pixel of the frame onto the screen and shows it.
// Cells past the screen edge are dropped by tcell.
func (t *Terminal) Present(frame Frame) error {
	if frame.Grid == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	g := frame.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p, _ := g.Get(x, y)
			t.screen.SetContent(frame.X+x, frame.Y+y, p.Symbol, nil, convertStyle(p.Style))
		}
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	t.screen.Show()
	return nil
}

func (t *Terminal) ShowCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(0, 0)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// HasTrueColor returns true if the screen supports 24-bit color.
func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors() > 256
}

// Pixel reads back the cell at (x, y) as shown on the screen.
func (t *Terminal) Pixel(x, y int) core.Pixel {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.NewPixel(mainc, convertTcellStyle(style))
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background))
}

func convertColor(c core.Color) tcell.Color {
	switch c.Mode {
	case core.ColorModeSystem, core.ColorModeIndexed:
		return tcell.PaletteColor(int(c.R))
	case core.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, _ := ts.Decompose()
	return core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
}

// convertTcellColor converts tcell.Color to our Color. Palette entries 0-7
// come back as system colors.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}

	if tc >= tcell.ColorValid && tc < tcell.ColorValid+256 && !tc.IsRGB() {
		idx := uint8(tc - tcell.ColorValid)
		if idx < 8 {
			return core.SystemColor(idx)
		}
		return core.IndexedColor(idx)
	}

	r, g, b := tc.RGB()
	return core.RGBColor(uint8(r), uint8(g), uint8(b))
}
