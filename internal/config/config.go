// Package config loads and validates termgrid settings.
//
// Settings come from a TOML file layered over built-in defaults, with
// TERMGRID_* environment variables applied last:
//
//	[terminal]
//	width = 0          # 0 queries the terminal
//	height = 0
//	require_tty = false
//
//	[canvas]
//	border = true
//	border_fg = "#5f87af"   # hex, system color name, palette index or ""
//	border_bg = ""
//	title = "termgrid"
//
//	[render]
//	fps = 30
//	frames = 0              # 0 runs until interrupted
//	color_mode = "truecolor" # or "256"
//	backend = "stream"       # or "tcell"
//	address_rows = false
//
//	[log]
//	level = "info"
//	file = ""               # empty logs to stderr
//	format = "console"      # or "json"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/termgrid/internal/renderer/core"
)

// Color modes.
const (
	ColorModeTrueColor = "truecolor"
	ColorMode256       = "256"
)

// Backend names.
const (
	BackendStream = "stream"
	BackendTcell  = "tcell"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// MaxFPS bounds render.fps.
const MaxFPS = 240

// Config is the full set of settings.
type Config struct {
	Terminal TerminalConfig `toml:"terminal"`
	Canvas   CanvasConfig   `toml:"canvas"`
	Render   RenderConfig   `toml:"render"`
	Log      LogConfig      `toml:"log"`
}

// TerminalConfig controls terminal discovery.
type TerminalConfig struct {
	// Width and Height override the queried terminal size when both are set.
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	RequireTTY bool `toml:"require_tty"`
}

// CanvasConfig controls the root canvas.
type CanvasConfig struct {
	Border   bool   `toml:"border"`
	BorderFg string `toml:"border_fg"`
	BorderBg string `toml:"border_bg"`
	Title    string `toml:"title"`
}

// RenderConfig controls the frame loop and output.
type RenderConfig struct {
	FPS         int    `toml:"fps"`
	Frames      int    `toml:"frames"`
	ColorMode   string `toml:"color_mode"`
	Backend     string `toml:"backend"`
	AddressRows bool   `toml:"address_rows"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Border:   true,
			BorderFg: "#5f87af",
			Title:    "termgrid",
		},
		Render: RenderConfig{
			FPS:       30,
			ColorMode: ColorModeTrueColor,
			Backend:   BackendStream,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// The result is not validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse decodes TOML data over the defaults. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return cfg, nil
}

// Encode returns cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every setting and returns all failures joined. Each
// failure is a *ValidationError matching ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.Terminal.Width < 0 {
		fail("terminal.width", "must not be negative", c.Terminal.Width)
	}
	if c.Terminal.Height < 0 {
		fail("terminal.height", "must not be negative", c.Terminal.Height)
	}
	if (c.Terminal.Width == 0) != (c.Terminal.Height == 0) {
		fail("terminal", "width and height must be set together", fmt.Sprintf("%dx%d", c.Terminal.Width, c.Terminal.Height))
	}

	if _, err := ParseColor(c.Canvas.BorderFg); err != nil {
		fail("canvas.border_fg", err.Error(), c.Canvas.BorderFg)
	}
	if _, err := ParseColor(c.Canvas.BorderBg); err != nil {
		fail("canvas.border_bg", err.Error(), c.Canvas.BorderBg)
	}
	if _, err := core.PixelsFromString(c.Canvas.Title, core.DefaultStyle()); err != nil {
		fail("canvas.title", err.Error(), c.Canvas.Title)
	}

	if c.Render.FPS < 1 || c.Render.FPS > MaxFPS {
		fail("render.fps", fmt.Sprintf("must be between 1 and %d", MaxFPS), c.Render.FPS)
	}
	if c.Render.Frames < 0 {
		fail("render.frames", "must not be negative", c.Render.Frames)
	}
	switch c.Render.ColorMode {
	case ColorModeTrueColor, ColorMode256:
	default:
		fail("render.color_mode", "must be \"truecolor\" or \"256\"", c.Render.ColorMode)
	}
	switch c.Render.Backend {
	case BackendStream, BackendTcell:
	default:
		fail("render.backend", "must be \"stream\" or \"tcell\"", c.Render.Backend)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		fail("log.level", "unknown level", c.Log.Level)
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		fail("log.format", "must be \"console\" or \"json\"", c.Log.Format)
	}

	return errors.Join(errs...)
}

// BorderStyle returns the border style described by canvas.border_fg and
// canvas.border_bg.
func (c *Config) BorderStyle() (core.Style, error) {
	fg, err := ParseColor(c.Canvas.BorderFg)
	if err != nil {
		return core.Style{}, err
	}
	bg, err := ParseColor(c.Canvas.BorderBg)
	if err != nil {
		return core.Style{}, err
	}
	return core.Style{Foreground: fg, Background: bg}, nil
}

// TerminalSize returns the configured size override, or the zero Size.
func (c *Config) TerminalSize() core.Size {
	return core.Size{Width: c.Terminal.Width, Height: c.Terminal.Height}
}

// FrameInterval returns the time between frames.
func (c *Config) FrameInterval() time.Duration {
	if c.Render.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(c.Render.FPS)
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// ParseColor accepts "" (terminal default), a system color name, a palette
// index 0-255 or a hex color.
func ParseColor(s string) (core.Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return core.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		return core.HexColor(s)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return core.Color{}, fmt.Errorf("%w: palette index %d out of range", core.ErrInvalidColor, n)
		}
		return core.IndexedColor(uint8(n)), nil
	}
	return core.SystemColorByName(s)
}
