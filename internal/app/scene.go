package app

import (
	"fmt"

	"github.com/dshills/termgrid/internal/config"
	"github.com/dshills/termgrid/internal/renderer"
	"github.com/dshills/termgrid/internal/renderer/core"
)

// Status box geometry.
const (
	statusWidth  = 22
	statusHeight = 3
)

var (
	titleStyle  = core.Style{Foreground: core.ColorWhite, Background: core.ColorBlack}
	statusStyle = core.NewStyle(core.ColorYellow, core.ContextForeground)
)

// Scene is the view tree drawn every frame: a fullscreen root canvas
// holding the plasma field, a title and a bordered status box.
type Scene struct {
	Root *renderer.Canvas

	field  *renderer.Text
	title  *renderer.Text
	status *renderer.Canvas
	line   *renderer.Text

	plasma     *Plasma
	cells      []core.Pixel
	downsample bool
}

// NewScene builds the scene for a terminal of the given size. In the 256
// color mode every color the scene draws is a palette entry.
func NewScene(term core.Size, cfg *config.Config) (*Scene, error) {
	root, err := renderer.NewFullscreenCanvas(term, false)
	if err != nil {
		return nil, err
	}
	downsample := cfg.Render.ColorMode == config.ColorMode256
	s := &Scene{
		Root:       root,
		plasma:     NewPlasma(DefaultGradient, gradientLevels, downsample),
		downsample: downsample,
	}

	s.field, err = renderer.NewText(renderer.TextConfig{WrapWidth: max(term.Width, 1)})
	if err != nil {
		return nil, err
	}
	s.title, err = renderer.TextFromString("", titleStyle, 1, 0)
	if err != nil {
		return nil, err
	}
	for _, v := range []renderer.View{s.field, s.title} {
		if err := root.Append(v); err != nil {
			return nil, err
		}
	}

	// Terminals too small for the box simply go without it.
	if term.Width >= statusWidth+2 && term.Height >= statusHeight+2 {
		s.status, err = renderer.NewCanvas(renderer.CanvasConfig{
			Width:  statusWidth,
			Height: statusHeight,
			Border: true,
		}, term)
		if err != nil {
			return nil, err
		}
		s.line, err = renderer.TextFromString("", statusStyle, 0, 0)
		if err != nil {
			return nil, err
		}
		if err := s.status.Append(s.line); err != nil {
			return nil, err
		}
		if err := root.Append(s.status); err != nil {
			return nil, err
		}
	}

	if err := s.Apply(cfg.Canvas); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply sets the border, border style and title from cfg and lays the
// children out for the resulting active region.
func (s *Scene) Apply(cfg config.CanvasConfig) error {
	style, err := (&config.Config{Canvas: cfg}).BorderStyle()
	if err != nil {
		return err
	}
	if s.downsample {
		style = core.Style{Foreground: style.Foreground.Downsample(), Background: style.Background.Downsample()}
	}
	if err := s.Root.SetBorder(cfg.Border); err != nil {
		return err
	}
	s.Root.UpdateBorderStyle(style)
	if s.status != nil {
		s.status.UpdateBorderStyle(style)
	}

	title := cfg.Title
	if title != "" {
		title = " " + title + " "
	}
	if err := s.title.UpdateString(title, titleStyle); err != nil {
		return err
	}
	_, _ = s.title.Resize(max(s.title.Len(), 1))
	s.layout()
	return nil
}

func (s *Scene) layout() {
	w, h := s.Root.ActiveWidth(), s.Root.ActiveHeight()
	if w > 0 {
		_, _ = s.field.Resize(w)
	}
	if s.status != nil {
		s.status.MoveTo(max(w-statusWidth-1, 0), max(h-statusHeight-1, 0))
	}
}

// Update regenerates the field for frame and refreshes the status line.
// The status line is drawn inverted while frames run late.
func (s *Scene) Update(frame int, fps float64, late bool) {
	w, h := s.Root.ActiveWidth(), s.Root.ActiveHeight()
	s.cells = s.plasma.Fill(s.cells, w, h, frame)
	s.field.Update(s.cells)

	if s.line != nil {
		text := fmt.Sprintf("frame %d", frame)
		if fps > 0 {
			text = fmt.Sprintf("frame %d %5.1f fps", frame, fps)
		}
		text = text[:min(len(text), s.status.ActiveWidth())]
		style := statusStyle
		if late {
			style = style.Invert()
		}
		_ = s.line.UpdateString(text, style)
		_, _ = s.line.Resize(max(s.line.Len(), 1))
	}
}

// Plasma returns the field generator.
func (s *Scene) Plasma() *Plasma {
	return s.plasma
}

// Field returns the plasma field text.
func (s *Scene) Field() *renderer.Text {
	return s.field
}

// Status returns the status box, or nil when the terminal is too small
// for it.
func (s *Scene) Status() *renderer.Canvas {
	return s.status
}
