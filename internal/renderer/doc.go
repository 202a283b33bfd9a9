// Package renderer provides retained-mode drawing onto a terminal grid.
//
// A scene is a tree of views. Text is a run of styled pixels wrapped to a
// fixed width; Canvas owns a pixel grid, an optional one-cell border and an
// ordered list of child views. Drawing a canvas clears its active area,
// composites every child at its offset (clipping whatever falls outside)
// and hands the finished grid to a backend.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Renderer (Draw, Stats)           │
//	├─────────────────────────────────────────┤
//	│   Canvas ── children ──> Text | Canvas  │
//	├─────────────────────────────────────────┤
//	│   core: Grid │ Region │ Pixel │ Style   │
//	├─────────────────────────────────────────┤
//	│  Stream (ANSI) │ Screen (tcell) │ Null  │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.TerminalSize(int(os.Stdout.Fd()))
//	c, _ := renderer.NewFullscreenCanvas(term, true)
//	t, _ := renderer.TextFromString("hello", core.DefaultStyle(), 0, 0)
//	_ = c.Append(t)
//
//	r := renderer.New(backend.NewStream(os.Stdout, backend.StreamOptions{}), renderer.DefaultOptions())
//	_ = r.Draw(c)
//
// Canvases and texts are not safe for concurrent use. A Renderer rejects a
// Draw that starts while another is still running.
package renderer
