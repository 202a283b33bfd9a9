// Package ansi holds the escape sequence vocabulary used by the renderer.
//
// Only the subset the grid serializer and the stream backend need is
// defined here: cursor visibility, screen clear, absolute positioning and
// SGR color parameters (system, 256-color and truecolor).
package ansi

import (
	"bufio"
	"strconv"
	"strings"
)

// Fixed sequences.
const (
	ESC = "\x1b"
	CSI = ESC + "["

	CursorShow  = CSI + "?25h"
	CursorHide  = CSI + "?25l"
	ClearScreen = CSI + "2J"
	Home        = CSI + "H"
	ResetAll    = CSI + "0m"
)

// SGR parameters that restore the terminal defaults.
// The foreground reset also clears bold/dim (22) and underline (24).
const (
	FgDefault = "22;24;39"
	BgDefault = "49"
)

// CursorPosition returns CSI row;col H. Row and column are 1-based;
// values below 1 are clamped to 1.
func CursorPosition(row, col int) string {
	row = max(row, 1)
	col = max(col, 1)
	return CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// SGR joins parameters into a single Select Graphic Rendition sequence.
// Returns the empty string when no parameters are given.
func SGR(params ...string) string {
	if len(params) == 0 {
		return ""
	}
	return CSI + strings.Join(params, ";") + "m"
}

// Fg256 returns the foreground parameter for a 256-color palette index.
func Fg256(n uint8) string {
	return "38;5;" + strconv.Itoa(int(n))
}

// Bg256 returns the background parameter for a 256-color palette index.
func Bg256(n uint8) string {
	return "48;5;" + strconv.Itoa(int(n))
}

// FgRGB returns the truecolor foreground parameter.
func FgRGB(r, g, b uint8) string {
	return "38;2;" + rgb(r, g, b)
}

// BgRGB returns the truecolor background parameter.
func BgRGB(r, g, b uint8) string {
	return "48;2;" + rgb(r, g, b)
}

// FgSystem returns the 3x parameter for one of the eight named colors.
// Indexes above 7 wrap.
func FgSystem(n uint8) string {
	return strconv.Itoa(30 + int(n%8))
}

// BgSystem returns the 4x parameter for one of the eight named colors.
func BgSystem(n uint8) string {
	return strconv.Itoa(40 + int(n%8))
}

func rgb(r, g, b uint8) string {
	return strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
}

// WriteCursorPosition writes a cursor move to a 0-indexed cell without
// allocating.
func WriteCursorPosition(w *bufio.Writer, x, y int) {
	w.WriteString(CSI)
	writeInt(w, max(y, 0)+1)
	w.WriteByte(';')
	writeInt(w, max(x, 0)+1)
	w.WriteByte('H')
}

// writeInt writes a non-negative integer.
// Terminal coordinates rarely exceed three digits.
func writeInt(w *bufio.Writer, n int) {
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}
