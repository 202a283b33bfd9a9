package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/termgrid/internal/renderer/backend"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{"nil error", nil, ""},
		{"op only", &OperationError{Op: "draw"}, "draw"},
		{"op and target", &OperationError{Op: "reload", Target: "termgrid.toml"}, "reload termgrid.toml"},
		{
			"op, target, and context",
			&OperationError{Op: "reload", Target: "termgrid.toml", Context: "validation"},
			"reload termgrid.toml (validation)",
		},
		{
			"full error chain",
			&OperationError{Op: "draw", Target: "frame 3", Context: "present", Err: errors.New("broken pipe")},
			"draw frame 3 (present): broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewOperationError("draw", "", inner).WithContext("present")
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "present", err.Context)

	var nilErr *OperationError
	assert.Nil(t, nilErr.WithContext("x"))
	assert.NoError(t, nilErr.Unwrap())
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "terminal", Err: backend.ErrNoTerminal}
	assert.ErrorIs(t, err, ErrInitialization)
	assert.ErrorIs(t, err, backend.ErrNoTerminal)
	assert.Equal(t, "init terminal: not a terminal", err.Error())

	assert.Equal(t, "init scene", (&InitError{Component: "scene"}).Error())
}
