package core

import (
	"bufio"
	"io"
)

// Encode serializes the grid row by row into w.
//
// The encoder assumes the terminal starts in the default style and tracks
// the last style it emitted; a style sequence is written only when a cell's
// style differs from it, so a run of identically styled cells costs one
// sequence. Rows are separated by '\n' with none after the last row.
func (g *Grid) Encode(w io.Writer) error {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	g.encode(bw, DefaultStyle())
	return bw.Flush()
}

// EncodeFrom is Encode for a terminal already in style prev. It returns
// the style the terminal is left in.
func (g *Grid) EncodeFrom(w *bufio.Writer, prev Style) Style {
	return g.encode(w, prev)
}

func (g *Grid) encode(w *bufio.Writer, prev Style) Style {
	for y := 0; y < g.height; y++ {
		if y > 0 {
			w.WriteByte('\n')
		}
		prev = g.EncodeRow(w, y, prev)
	}
	return prev
}

// EncodeRow serializes a single row starting from style prev and returns
// the style the terminal is left in. Rows outside the grid write nothing.
func (g *Grid) EncodeRow(w *bufio.Writer, y int, prev Style) Style {
	if y < 0 || y >= g.height {
		return prev
	}
	for _, p := range g.cells[y*g.width : (y+1)*g.width] {
		if !p.Style.Equals(prev) {
			w.WriteString(p.Style.Format(prev))
			prev = p.Style
		}
		if p.Symbol < 0x80 {
			w.WriteByte(byte(p.Symbol))
		} else {
			w.WriteRune(p.Symbol)
		}
	}
	return prev
}
