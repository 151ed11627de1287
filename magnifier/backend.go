package magnifier

import (
	"errors"

	"goscope/frame"
)

// ErrBackendUnavailable is returned from Backend.Init when the underlying
// facility is missing on this system (no magnification API, no displays).
// The engine treats it as a signal to try the next backend rather than a
// fatal error.
var ErrBackendUnavailable = errors.New("backend unavailable")

// ErrBackendDisposed is returned when a backend is used after Dispose.
var ErrBackendDisposed = errors.New("backend disposed")

// Backend produces magnified output for one tick of the engine loop. The
// native backend renders directly into its own window and returns a nil
// frame; the generic backend returns a scaled frame for the engine to hand
// to the overlay window.
//
// Backends move through a strict lifecycle: Init exactly once, then
// Configure/Tick/SetVisible, then Dispose. A disposed backend cannot be
// re-initialized.
type Backend interface {
	// Init acquires the backend's resources. ErrBackendUnavailable means
	// the facility does not exist here; any other error is a real failure.
	Init() error

	// Configure pushes geometry, zoom and shape. An error leaves the
	// previously applied configuration in effect.
	Configure(cfg Config) error

	// Tick produces one frame of output. A nil frame with nil error means
	// the backend presented on its own surface.
	Tick(cfg Config) (*frame.Frame, error)

	// SetVisible shows or hides any surface the backend owns.
	SetVisible(visible bool) error

	// Dispose releases all resources. Safe to call more than once.
	Dispose()

	// Name identifies the backend in logs.
	Name() string
}
