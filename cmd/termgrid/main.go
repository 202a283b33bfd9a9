// Package main is the entry point for termgrid.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/termgrid/internal/app"
	"github.com/dshills/termgrid/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	// exitInit means the terminal or another component could not be set up.
	exitInit = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if app.IsFatal(err) {
			return exitInit
		}
		return exitError
	}
	return exitOK
}

// flags holds command line values. Only flags the user set override the
// configuration.
type flags struct {
	configPath string
	logLevel   string
	frames     int
	fps        int
	border     bool
	backend    string
	colorMode  string
	noWatch    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "termgrid",
		Short: "Draw an animated character grid in the terminal",
		Long: `termgrid draws a fullscreen canvas of styled character cells: an animated
plasma field, a title and a status box. Frames are written to stdout as ANSI
escape sequences; logs go to stderr or the configured log file.

Settings come from a TOML file (see --config), TERMGRID_<SECTION>_<KEY>
environment variables and the flags below, in increasing precedence. Edits
to the config file are applied while running.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, f, stdout, stderr)
		},
	}

	fs := root.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "termgrid.toml", "Path to configuration file")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.IntVarP(&f.frames, "frames", "n", 0, "Stop after this many frames (0 runs until interrupted)")
	fs.IntVar(&f.fps, "fps", 0, "Frames per second")
	fs.BoolVar(&f.border, "border", true, "Draw a border around the canvas")
	fs.StringVar(&f.backend, "backend", "", "Output backend (stream, tcell)")
	fs.StringVar(&f.colorMode, "color-mode", "", "Color mode (truecolor, 256)")
	fs.BoolVar(&f.noWatch, "no-watch", false, "Do not reload the config file when it changes")

	root.AddCommand(newVersionCmd(stdout))
	return root
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "termgrid %s\n", version)
			fmt.Fprintf(stdout, "Commit: %s\n", commit)
			fmt.Fprintf(stdout, "Built: %s\n", date)
		},
	}
}

// overrides returns a function applying the flags the user set.
func (f flags) overrides(cmd *cobra.Command) func(*config.Config) {
	changed := cmd.Flags().Changed
	return func(c *config.Config) {
		if changed("log-level") {
			c.Log.Level = f.logLevel
		}
		if changed("frames") {
			c.Render.Frames = f.frames
		}
		if changed("fps") {
			c.Render.FPS = f.fps
		}
		if changed("border") {
			c.Canvas.Border = f.border
		}
		if changed("backend") {
			c.Render.Backend = f.backend
		}
		if changed("color-mode") {
			c.Render.ColorMode = f.colorMode
		}
	}
}

func runRender(cmd *cobra.Command, f flags, stdout, stderr io.Writer) error {
	// The default path may be absent; an explicit one must exist.
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(f.configPath); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}

	overrides := f.overrides(cmd)
	cfg, err := app.LoadConfig(f.configPath, overrides)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid configuration:\n%w", err)
		}
		return err
	}

	logger, err := app.NewLogger(cfg.Log, app.TerminalLevel(cfg.LogLevel(), cfg.Log, stdout), stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	opts := app.Options{
		Logger:    logger.Logger,
		Output:    stdout,
		Overrides: overrides,
	}
	if !f.noWatch {
		opts.ConfigPath = f.configPath
	}

	a, err := app.New(cfg, opts)
	if err != nil {
		return err
	}

	logger.Debug().Str("version", version).Str("config", f.configPath).Msg("starting")
	if err := a.Run(cmd.Context()); err != nil {
		logger.Error().Err(err).Msg("run failed")
		return err
	}
	return nil
}
