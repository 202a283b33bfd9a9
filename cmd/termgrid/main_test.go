package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termgrid/internal/renderer/ansi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termgrid.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "termgrid dev")
}

func TestRenderFrames(t *testing.T) {
	path := writeConfig(t, "[terminal]\nwidth = 40\nheight = 10\n[log]\nformat = \"json\"\n")
	var stdout, stderr bytes.Buffer

	code := run([]string{"--config", path, "--frames", "2", "--fps", "240", "--no-watch", "--border=false"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	assert.Equal(t, 2, strings.Count(out, ansi.CursorPosition(1, 1)))
	// Only the status box has corners once --border=false wins over the
	// default.
	assert.Equal(t, 2, strings.Count(out, "┌"))
	assert.Contains(t, stderr.String(), `"frames":2`)
}

func TestEnvironmentSetsSize(t *testing.T) {
	t.Setenv("TERMGRID_TERMINAL_WIDTH", "30")
	t.Setenv("TERMGRID_TERMINAL_HEIGHT", "8")
	path := writeConfig(t, "")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", path, "-n", "1", "--color-mode", "256", "--no-watch"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "┌")
	assert.NotContains(t, stdout.String(), "38;2;")
}

func TestNoTerminalIsFatal(t *testing.T) {
	path := writeConfig(t, "")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", path, "-n", "1", "--no-watch"}, &stdout, &stderr)
	assert.Equal(t, exitInit, code)
	assert.Contains(t, stderr.String(), "not a terminal")
}

func TestInvalidSettings(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeConfig(t, "[render]\nbackend = \"gpu\"\n")
	code := run([]string{"-c", path}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "render.backend")

	stderr.Reset()
	code = run([]string{"-c", path, "--backend", "stream", "--fps", "0"}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "render.fps")
	assert.NotContains(t, stderr.String(), "render.backend", "flags override the file")

	stderr.Reset()
	code = run([]string{"-c", filepath.Join(t.TempDir(), "absent.toml")}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout.String())
}

func TestUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitError, run([]string{"--bogus"}, &stdout, &stderr))
}
