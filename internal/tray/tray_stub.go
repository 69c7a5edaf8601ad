//go:build !cgo && !windows
// +build !cgo,!windows

package tray

import (
	"context"
	"errors"

	"github.com/example/menubridge/internal/bridge"
)

// Mirror is the no-op stand-in used when no tray backend is available. The
// bridge keeps serving; only the visual mirror is missing.
type Mirror struct{}

// NewMirror constructs the stub mirror.
func NewMirror(_ *bridge.Loop, _ *bridge.Bridge) *Mirror {
	return &Mirror{}
}

// Run reports that tray rendering is unavailable on this build.
func (m *Mirror) Run(_ context.Context) error {
	return errors.New("system tray is unavailable without cgo support")
}
