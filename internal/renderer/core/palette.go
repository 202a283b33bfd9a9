package core

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// xterm base colors 0-15.
var basePalette = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0x80, 0x00, 0x00}, {0x00, 0x80, 0x00}, {0x80, 0x80, 0x00},
	{0x00, 0x00, 0x80}, {0x80, 0x00, 0x80}, {0x00, 0x80, 0x80}, {0xc0, 0xc0, 0xc0},
	{0x80, 0x80, 0x80}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
	{0x00, 0x00, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

// Color cube levels for indexes 16-231.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

var (
	paletteOnce sync.Once
	palette     [256]colorful.Color
)

func buildPalette() {
	for i := 0; i < 16; i++ {
		c := basePalette[i]
		palette[i] = rgbToColorful(c[0], c[1], c[2])
	}
	for i := 16; i < 232; i++ {
		n := i - 16
		palette[i] = rgbToColorful(cubeLevels[n/36], cubeLevels[(n/6)%6], cubeLevels[n%6])
	}
	for i := 232; i < 256; i++ {
		v := uint8(8 + 10*(i-232))
		palette[i] = rgbToColorful(v, v, v)
	}
}

func rgbToColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// paletteColor returns the nominal RGB value of a palette index.
func paletteColor(index uint8) colorful.Color {
	paletteOnce.Do(buildPalette)
	return palette[index]
}

// nearestPaletteIndex finds the perceptually closest entry among the cube
// and grayscale ramp. The base 16 are skipped because terminals theme them.
func nearestPaletteIndex(c Color) uint8 {
	paletteOnce.Do(buildPalette)
	target, _ := c.Colorful()
	best := 16
	bestDist := target.DistanceLab(palette[16])
	for i := 17; i < 256; i++ {
		if d := target.DistanceLab(palette[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}
