package app

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termgrid/internal/renderer/core"
)

func TestPlasmaValueRange(t *testing.T) {
	p := NewPlasma(nil, 16, false)
	for frame := 0; frame < 20; frame += 7 {
		for y := 0; y < 30; y++ {
			for x := 0; x < 100; x += 3 {
				v := p.Value(x, y, frame)
				require.GreaterOrEqual(t, v, 0.0)
				require.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestPlasmaAnimates(t *testing.T) {
	p := NewPlasma(nil, 16, false)
	a := p.Fill(nil, 20, 5, 0)
	b := p.Fill(nil, 20, 5, 10)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, p.Fill(nil, 20, 5, 0), "a frame is deterministic")
}

func TestPlasmaRamp(t *testing.T) {
	stops := []colorful.Color{mustParseHex("#000000"), mustParseHex("#ffffff")}
	p := NewPlasma(stops, 3, false)
	require.Equal(t, 3, p.Levels())

	assert.True(t, core.RGBColor(0, 0, 0).Equals(p.Color(0)))
	assert.True(t, core.RGBColor(255, 255, 255).Equals(p.Color(1)))
	assert.True(t, p.Color(-3).Equals(p.Color(0)), "values are clamped")
	assert.True(t, p.Color(7).Equals(p.Color(1)))
	assert.Equal(t, core.ColorModeRGB, p.Color(0.5).Mode)
}

func TestPlasmaDownsample(t *testing.T) {
	p := NewPlasma(nil, 32, true)
	for i := 0; i < p.Levels(); i++ {
		c := p.Color(float64(i) / float64(p.Levels()-1))
		assert.Equal(t, core.ColorModeIndexed, c.Mode)
	}
}

func TestPlasmaFillReusesStorage(t *testing.T) {
	p := NewPlasma(nil, 8, false)
	buf := make([]core.Pixel, 0, 64)
	out := p.Fill(buf, 8, 4, 1)
	require.Len(t, out, 32)
	assert.Same(t, &buf[:1][0], &out[0])
	for _, px := range out {
		assert.Equal(t, FieldGlyph, px.Symbol)
		assert.True(t, px.Style.Background.IsDefault())
	}

	assert.Empty(t, p.Fill(nil, 0, 4, 1))
}
