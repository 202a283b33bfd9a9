// Package app runs termgrid: a fullscreen canvas with an animated plasma
// field, a title and a status box, drawn at a fixed frame rate until the
// context is cancelled or a frame limit is reached.
//
// The frame loop is single-threaded. Configuration reloads arrive from
// the watcher goroutine over a channel and are applied between frames.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/termgrid/internal/config"
	"github.com/dshills/termgrid/internal/config/watcher"
	"github.com/dshills/termgrid/internal/renderer"
	"github.com/dshills/termgrid/internal/renderer/backend"
)

// gradientLevels is the number of colors in the field ramp. Quantizing the
// field keeps neighboring cells in the same style run.
const gradientLevels = 48

// Options configures the application.
type Options struct {
	// ConfigPath is the config file to watch for changes. Empty disables
	// live reload.
	ConfigPath string

	// Logger receives application logs. Defaults to a no-op logger.
	Logger zerolog.Logger

	// Backend overrides the backend chosen by render.backend.
	Backend backend.Backend

	// Output is where the stream backend writes frames. Defaults to
	// os.Stdout.
	Output io.Writer

	// Overrides is applied to every reloaded config after the environment,
	// so command line flags keep winning over the file.
	Overrides func(*config.Config)
}

// App owns the backend, renderer and scene for one run.
type App struct {
	cfg  *config.Config
	opts Options
	log  zerolog.Logger

	backend  backend.Backend
	renderer *renderer.Renderer
	scene    *Scene
	metrics  *Metrics

	watcher *watcher.Watcher
	reloads <-chan watcher.Event

	running atomic.Bool
}

// New creates an application for a validated configuration.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	a := &App{
		cfg:     cfg,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "app").Logger(),
		metrics: NewMetrics(),
		backend: opts.Backend,
	}
	if a.backend == nil {
		b, err := newBackend(cfg, opts.Output)
		if err != nil {
			return nil, &InitError{Component: "backend", Err: err}
		}
		a.backend = b
	}
	return a, nil
}

func newBackend(cfg *config.Config, out io.Writer) (backend.Backend, error) {
	switch cfg.Render.Backend {
	case config.BackendTcell:
		return backend.NewTerminal()
	default:
		return backend.NewStream(out, backend.StreamOptions{
			RequireTTY:  cfg.Terminal.RequireTTY,
			Size:        cfg.TerminalSize(),
			AddressRows: cfg.Render.AddressRows,
		}), nil
	}
}

// Metrics returns the frame loop metrics.
func (a *App) Metrics() *Metrics {
	return a.metrics
}

// Backend returns the backend frames are presented to.
func (a *App) Backend() backend.Backend {
	return a.backend
}

// Scene returns the scene, or nil before Run has built it.
func (a *App) Scene() *Scene {
	return a.scene
}

// Run draws frames until ctx is done or render.frames frames have been
// drawn. A terminal whose size cannot be determined is an error.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer a.backend.Shutdown()

	size, err := a.backend.Size()
	if err == nil && (size.Width <= 0 || size.Height <= 0) {
		err = fmt.Errorf("reported size %s: %w", size, backend.ErrNoTerminal)
	}
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	a.matchColorMode()

	a.scene, err = NewScene(size, a.cfg)
	if err != nil {
		return &InitError{Component: "scene", Err: err}
	}

	a.renderer = renderer.New(a.backend, renderer.Options{Logger: a.opts.Logger, HideCursor: true})
	defer a.renderer.Close()

	if err := a.backend.Clear(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	if a.opts.ConfigPath != "" {
		if err := a.startWatcher(); err != nil {
			a.log.Warn().Err(err).Str("path", a.opts.ConfigPath).Msg("live reload disabled")
		} else {
			defer a.watcher.Close()
		}
	}

	a.log.Info().
		Stringer("size", size).
		Int("fps", a.cfg.Render.FPS).
		Int("frames", a.cfg.Render.Frames).
		Str("backend", a.cfg.Render.Backend).
		Str("color_mode", a.cfg.Render.ColorMode).
		Msg("frame loop started")

	err = a.loop(ctx)

	snap := a.metrics.Snapshot()
	a.log.Info().
		Uint64("frames", snap.FrameCount).
		Uint64("late", snap.LateFrames).
		Uint64("clipped", snap.ClippedCells).
		Float64("fps", snap.DeliveredFPS()).
		Msg("frame loop stopped")
	return err
}

// trueColorReporter is implemented by backends that know the terminal's
// color depth.
type trueColorReporter interface {
	HasTrueColor() bool
}

// matchColorMode falls back to the 256 color mode when the backend reports
// a terminal without truecolor support.
func (a *App) matchColorMode() {
	r, ok := a.backend.(trueColorReporter)
	if !ok || a.cfg.Render.ColorMode != config.ColorModeTrueColor || r.HasTrueColor() {
		return
	}
	a.log.Info().Msg("terminal lacks truecolor, using 256 colors")
	a.cfg.Render.ColorMode = config.ColorMode256
}

func (a *App) loop(ctx context.Context) error {
	interval := a.cfg.FrameInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		if err := a.drawFrame(frame, interval); err != nil {
			return err
		}
		if limit := a.cfg.Render.Frames; limit > 0 && frame+1 >= limit {
			return nil
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-a.reloads:
				if !ok {
					a.reloads = nil
					continue
				}
				if next := a.reload(ev); next != interval {
					interval = next
					ticker.Reset(interval)
				}
			case <-ticker.C:
				break wait
			}
		}
	}
}

func (a *App) drawFrame(frame int, interval time.Duration) error {
	start := time.Now()
	snap := a.metrics.Snapshot()
	a.scene.Update(frame, snap.DeliveredFPS(), time.Duration(snap.LastFrameNs) > interval)

	if err := a.renderer.Draw(a.scene.Root); err != nil {
		return NewOperationError("draw", "frame "+strconv.Itoa(frame), err)
	}

	elapsed := time.Since(start)
	a.metrics.RecordFrame(elapsed)
	a.metrics.RecordClipped(a.renderer.Stats().LastClip.Clipped)
	if elapsed > interval {
		a.metrics.RecordLateFrame()
		a.log.Debug().Int("frame", frame).Dur("elapsed", elapsed).Msg("frame overran interval")
	}
	return nil
}

func (a *App) startWatcher() error {
	w, err := watcher.New(watcher.WithLogger(a.log))
	if err != nil {
		return err
	}
	if err := w.Watch(a.opts.ConfigPath); err != nil {
		_ = w.Close()
		return err
	}
	w.Start()
	a.watcher = w
	a.reloads = w.Events()
	return nil
}

// reload loads the config file again and applies the settings that can
// change while running: the canvas section and the frame rate. An invalid
// file is logged and ignored. It returns the frame interval to use.
func (a *App) reload(ev watcher.Event) time.Duration {
	log := a.log.With().Str("path", ev.Path).Stringer("op", ev.Op).Logger()
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		log.Info().Msg("config file gone, keeping current settings")
		return a.cfg.FrameInterval()
	}

	next, err := LoadConfig(a.opts.ConfigPath, a.opts.Overrides)
	if err == nil {
		err = a.scene.Apply(next.Canvas)
	}
	if err != nil {
		a.metrics.RecordReload(false)
		log.Warn().Err(err).Msg("config reload rejected")
		// Reapply the current canvas so a partial Apply leaves nothing behind.
		if rerr := a.scene.Apply(a.cfg.Canvas); rerr != nil {
			log.Error().Err(rerr).Msg("restoring canvas settings")
		}
		return a.cfg.FrameInterval()
	}

	a.cfg.Canvas = next.Canvas
	a.cfg.Render.FPS = next.Render.FPS
	a.metrics.RecordReload(true)
	log.Info().
		Bool("border", next.Canvas.Border).
		Int("fps", next.Render.FPS).
		Msg("config reloaded")
	return a.cfg.FrameInterval()
}

// LoadConfig loads path over the defaults, applies TERMGRID_* variables
// and then overrides, and validates the result.
func LoadConfig(path string, overrides func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if overrides != nil {
		overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsFatal reports whether err ended the run because the terminal could not
// be set up.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInitialization)
}
