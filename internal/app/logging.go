package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dshills/termgrid/internal/config"
)

// Logger bundles the application logger with the file it writes to, if any.
type Logger struct {
	zerolog.Logger
	Session string
	file    *os.File
}

// NewLogger builds a logger from cfg. Logs go to cfg.File when set and to
// stderr otherwise; stdout carries frames and is never logged to. Every
// record carries the session id of this run.
func NewLogger(cfg config.LogConfig, level zerolog.Level, stderr io.Writer) (*Logger, error) {
	l := &Logger{Session: uuid.NewString()}

	out := stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = f
		out = f
	}

	if cfg.Format != config.LogFormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    l.file != nil,
		}
	}

	l.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("session", l.Session).
		Logger()
	return l, nil
}

// Close closes the log file, if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// TerminalLevel raises level to warn when logs would share a terminal with
// the frames: no log file is configured and stdout is a terminal. Set
// log.file to keep lower levels while drawing to a terminal.
func TerminalLevel(level zerolog.Level, cfg config.LogConfig, stdout io.Writer) zerolog.Level {
	if cfg.File != "" || !isTerminal(stdout) || level >= zerolog.WarnLevel {
		return level
	}
	return zerolog.WarnLevel
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
