// Package core provides the value types and cell storage for the renderer.
// This package breaks import cycles between renderer and backend.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termgrid/internal/renderer/ansi"
)

// ColorMode identifies how a Color is encoded on the wire.
type ColorMode uint8

const (
	// ColorModeDefault is the terminal's own color. It is the zero value and
	// plays the role of "no attribute".
	ColorModeDefault ColorMode = iota
	// ColorModeSystem is one of the eight named colors (SGR 30-37 / 40-47).
	ColorModeSystem
	// ColorModeIndexed is an entry of the xterm 256-color palette.
	ColorModeIndexed
	// ColorModeRGB is a 24-bit truecolor value.
	ColorModeRGB
)

// String returns the mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorModeDefault:
		return "default"
	case ColorModeSystem:
		return "system"
	case ColorModeIndexed:
		return "indexed"
	case ColorModeRGB:
		return "rgb"
	default:
		return "unknown"
	}
}

// Layer selects which half of a style a color applies to.
type Layer uint8

const (
	LayerForeground Layer = iota
	LayerBackground
)

// Color represents a color value.
type Color struct {
	Mode ColorMode
	// For system and indexed colors R holds the index; G and B are ignored.
	R, G, B uint8
}

// Named system color indexes.
const (
	SystemBlack uint8 = iota
	SystemRed
	SystemGreen
	SystemYellow
	SystemBlue
	SystemMagenta
	SystemCyan
	SystemWhite
)

var systemNames = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{}

// Common colors.
var (
	ColorBlack   = SystemColor(SystemBlack)
	ColorRed     = SystemColor(SystemRed)
	ColorGreen   = SystemColor(SystemGreen)
	ColorYellow  = SystemColor(SystemYellow)
	ColorBlue    = SystemColor(SystemBlue)
	ColorMagenta = SystemColor(SystemMagenta)
	ColorCyan    = SystemColor(SystemCyan)
	ColorWhite   = SystemColor(SystemWhite)
)

// SystemColor creates one of the eight named colors. Indexes above 7 wrap.
func SystemColor(index uint8) Color {
	return Color{Mode: ColorModeSystem, R: index % 8}
}

// SystemColorByName looks up a named color ("red", "cyan", ...).
func SystemColorByName(name string) (Color, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range systemNames {
		if n == lower {
			return SystemColor(uint8(i)), nil
		}
	}
	return Color{}, fmt.Errorf("%w: unknown system color %q", ErrInvalidColor, name)
}

// IndexedColor creates an xterm 256-color palette color.
func IndexedColor(index uint8) Color {
	return Color{Mode: ColorModeIndexed, R: index}
}

// RGBColor creates a truecolor value.
func RGBColor(r, g, b uint8) Color {
	return Color{Mode: ColorModeRGB, R: r, G: g, B: b}
}

// HexColor parses "#RGB", "#RRGGBB", "RGB" or "RRGGBB".
func HexColor(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, hex, err)
	}
	return FromColorful(c), nil
}

// FromColorful converts a go-colorful color into a truecolor value.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGBColor(r, g, b)
}

// Colorful returns the color in go-colorful space.
// Default colors have no RGB value and return false.
func (c Color) Colorful() (colorful.Color, bool) {
	switch c.Mode {
	case ColorModeRGB:
		return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}, true
	case ColorModeSystem, ColorModeIndexed:
		return paletteColor(c.R), true
	default:
		return colorful.Color{}, false
	}
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Mode == ColorModeDefault
}

// Equals returns true if two colors encode to the same attribute.
func (c Color) Equals(other Color) bool {
	return c.normalized() == other.normalized()
}

func (c Color) normalized() Color {
	switch c.Mode {
	case ColorModeRGB:
		return c
	case ColorModeSystem:
		return Color{Mode: c.Mode, R: c.R % 8}
	case ColorModeIndexed:
		return Color{Mode: c.Mode, R: c.R}
	default:
		return Color{}
	}
}

// SGR returns the SGR parameter that selects this color on the given layer.
func (c Color) SGR(layer Layer) string {
	fg := layer == LayerForeground
	switch c.Mode {
	case ColorModeSystem:
		if fg {
			return ansi.FgSystem(c.R)
		}
		return ansi.BgSystem(c.R)
	case ColorModeIndexed:
		if fg {
			return ansi.Fg256(c.R)
		}
		return ansi.Bg256(c.R)
	case ColorModeRGB:
		if fg {
			return ansi.FgRGB(c.R, c.G, c.B)
		}
		return ansi.BgRGB(c.R, c.G, c.B)
	default:
		if fg {
			return ansi.FgDefault
		}
		return ansi.BgDefault
	}
}

// String returns a string representation of the color.
func (c Color) String() string {
	switch c.Mode {
	case ColorModeSystem:
		return systemNames[c.R%8]
	case ColorModeIndexed:
		return fmt.Sprintf("idx(%d)", c.R)
	case ColorModeRGB:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// Blend mixes two colors in Lab space. Amount 0.0 = c, 1.0 = other.
// If either side is the default color the nearer endpoint is returned.
func (c Color) Blend(other Color, amount float64) Color {
	a, okA := c.Colorful()
	b, okB := other.Colorful()
	if !okA || !okB {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return FromColorful(a.BlendLab(b, amount))
}

// Downsample maps a truecolor value to the nearest 256-palette entry.
// Other modes are returned unchanged.
func (c Color) Downsample() Color {
	if c.Mode != ColorModeRGB {
		return c
	}
	return IndexedColor(nearestPaletteIndex(c))
}

// Context selects which layers a constructed style colors.
type Context uint8

const (
	ContextForeground Context = iota
	ContextBackground
	// ContextSolid colors both layers, producing a filled cell.
	ContextSolid
)

// Style is the visual style of a cell: an optional foreground and an
// optional background attribute. The zero value is the terminal default.
type Style struct {
	Foreground Color
	Background Color
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{}
}

// NewStyle creates a style coloring the layers named by ctx.
func NewStyle(c Color, ctx Context) Style {
	switch ctx {
	case ContextBackground:
		return Style{Background: c}
	case ContextSolid:
		return Style{Foreground: c, Background: c}
	default:
		return Style{Foreground: c}
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background)
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() && s.Background.IsDefault()
}

// Invert returns a style with foreground and background swapped.
func (s Style) Invert() Style {
	return Style{
		Foreground: s.Background,
		Background: s.Foreground,
	}
}

// Format returns the escape sequence that moves the terminal from prev to s.
// Only the layers that differ are emitted; identical styles produce "".
func (s Style) Format(prev Style) string {
	var params []string
	if !s.Foreground.Equals(prev.Foreground) {
		params = append(params, s.Foreground.SGR(LayerForeground))
	}
	if !s.Background.Equals(prev.Background) {
		params = append(params, s.Background.SGR(LayerBackground))
	}
	return ansi.SGR(params...)
}

// Sequence returns the full escape sequence for s, as if nothing had been
// emitted before. The default style produces "".
func (s Style) Sequence() string {
	return s.Format(DefaultStyle())
}

// String returns a short description, e.g. "fg=red bg=default".
func (s Style) String() string {
	return "fg=" + s.Foreground.String() + " bg=" + s.Background.String()
}

// Size is a width/height pair in cells, used for terminal extents.
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether either dimension is zero or negative.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Fits reports whether a width x height rectangle fits inside s.
func (s Size) Fits(width, height int) bool {
	return width <= s.Width && height <= s.Height
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
