//go:build !windows

package magnifier

import (
	"fmt"

	"goscope/frame"
)

// unavailableBackend stands in for the native backend on platforms without
// a system magnification API, so the engine's fallback path is the same
// everywhere.
type unavailableBackend struct{}

func newNativeBackend() Backend { return unavailableBackend{} }

func (unavailableBackend) Name() string { return "native" }

func (unavailableBackend) Init() error {
	return fmt.Errorf("no system magnification API on this platform: %w", ErrBackendUnavailable)
}

func (unavailableBackend) Configure(cfg Config) error { return ErrBackendUnavailable }

func (unavailableBackend) Tick(cfg Config) (*frame.Frame, error) {
	return nil, ErrBackendUnavailable
}

func (unavailableBackend) SetVisible(visible bool) error { return ErrBackendUnavailable }

func (unavailableBackend) Dispose() {}
