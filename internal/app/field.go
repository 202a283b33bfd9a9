package app

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termgrid/internal/renderer/core"
)

// FieldGlyph is the symbol every field cell is drawn with.
const FieldGlyph = '█'

// DefaultGradient is the field's color ramp, from low to high values.
var DefaultGradient = []colorful.Color{
	mustParseHex("#0b1d51"),
	mustParseHex("#725cad"),
	mustParseHex("#e07a5f"),
	mustParseHex("#f2cc8f"),
	mustParseHex("#81b29a"),
	mustParseHex("#0b1d51"),
}

// mustParseHex parses a hex color with colorful.Hex and panics on error.
func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("mustParseHex: " + err.Error())
	}
	return c
}

// Plasma generates an animated field of values in [0, 1] and maps them
// onto a color ramp.
type Plasma struct {
	// Speed scales how far the field moves per frame.
	Speed float64
	ramp  []core.Color
}

// NewPlasma builds a plasma with a ramp of levels colors blended in Lab
// space between the gradient stops. When downsample is set the ramp holds
// 256-color palette entries instead of truecolor values.
func NewPlasma(stops []colorful.Color, levels int, downsample bool) *Plasma {
	if len(stops) == 0 {
		stops = DefaultGradient
	}
	if levels < 2 {
		levels = 2
	}

	ramp := make([]core.Color, levels)
	for i := range ramp {
		c := core.FromColorful(gradientAt(stops, float64(i)/float64(levels-1)))
		if downsample {
			c = c.Downsample()
		}
		ramp[i] = c
	}
	return &Plasma{Speed: 0.15, ramp: ramp}
}

func gradientAt(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 1 {
		return stops[0]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return stops[i].BlendLab(stops[i+1], pos-float64(i))
}

// Value returns the field value at a cell for the given frame.
func (p *Plasma) Value(x, y, frame int) float64 {
	t := float64(frame) * p.Speed
	fx, fy := float64(x), float64(y)*2 // cells are about twice as tall as wide

	v := math.Sin(fx*0.11 + t)
	v += math.Sin((fy*0.09 + t) * 0.8)
	v += math.Sin((fx*0.07 + fy*0.05 + t) * 0.6)
	cx := fx*0.05 + 0.5*math.Sin(t*0.3)
	cy := fy*0.05 + 0.5*math.Cos(t*0.2)
	v += math.Sin(math.Sqrt(100*(cx*cx+cy*cy)+1) + t)

	return (v/4 + 1) / 2
}

// Color maps a value in [0, 1] onto the ramp. Values outside are clamped.
func (p *Plasma) Color(v float64) core.Color {
	i := int(math.Round(v * float64(len(p.ramp)-1)))
	i = max(0, min(i, len(p.ramp)-1))
	return p.ramp[i]
}

// Levels returns the number of colors in the ramp.
func (p *Plasma) Levels() int {
	return len(p.ramp)
}

// Fill writes a width x height field for frame into dst, reusing its
// storage, and returns it.
func (p *Plasma) Fill(dst []core.Pixel, width, height, frame int) []core.Pixel {
	n := max(width, 0) * max(height, 0)
	if cap(dst) < n {
		dst = make([]core.Pixel, n)
	}
	dst = dst[:n]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := p.Color(p.Value(x, y, frame))
			dst[y*width+x] = core.NewPixel(FieldGlyph, core.NewStyle(c, core.ContextForeground))
		}
	}
	return dst
}
