//go:build !linux

package mpris

import (
	"github.com/brelied/strum/internal/control"
	"github.com/brelied/strum/internal/engine"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *engine.Engine, _ *control.Channel) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
