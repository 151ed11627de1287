package magnifier

import (
	"fmt"
	"log"

	"goscope/frame"
	"goscope/region"
	"goscope/screenshot"
)

// genericBackend implements magnification portably: capture the source
// region from the primary display, scale it to the output size, and hand
// the frame back for the overlay window to present. Works anywhere the
// capture library works, at the cost of one full capture per tick.
type genericBackend struct {
	initialized bool
	disposed    bool
}

func newGenericBackend() Backend { return &genericBackend{} }

func (b *genericBackend) Name() string { return "generic" }

func (b *genericBackend) Init() error {
	if b.disposed {
		return ErrBackendDisposed
	}
	if b.initialized {
		return nil
	}
	if screenshot.NumDisplays() == 0 {
		return fmt.Errorf("no active displays: %w", ErrBackendUnavailable)
	}
	b.initialized = true
	log.Printf("magnifier: generic capture backend ready (%d displays)", screenshot.NumDisplays())
	return nil
}

// Configure is a no-op: the generic backend recomputes everything per tick
// from the config snapshot it is handed, so there is nothing to retain.
func (b *genericBackend) Configure(cfg Config) error {
	if b.disposed {
		return ErrBackendDisposed
	}
	return nil
}

func (b *genericBackend) Tick(cfg Config) (*frame.Frame, error) {
	if b.disposed {
		return nil, ErrBackendDisposed
	}
	if !b.initialized {
		return nil, fmt.Errorf("generic backend not initialized")
	}

	bounds, err := screenshot.PrimaryBounds()
	if err != nil {
		return nil, fmt.Errorf("query primary display: %w", err)
	}

	r := region.Compute(bounds.Dx(), bounds.Dy(), cfg.OutputWidth, cfg.OutputHeight, cfg.ZoomLevel, cfg.XOffset, cfg.YOffset)
	// Region math is display-relative; shift into virtual screen coordinates.
	r.Left += bounds.Min.X
	r.Top += bounds.Min.Y

	f, err := screenshot.CaptureRegion(r)
	if err != nil {
		return nil, fmt.Errorf("capture %dx%d at (%d,%d): %w", r.Width, r.Height, r.Left, r.Top, err)
	}
	scaled, err := f.Scale(cfg.OutputWidth, cfg.OutputHeight)
	if err != nil {
		return nil, fmt.Errorf("scale to %dx%d: %w", cfg.OutputWidth, cfg.OutputHeight, err)
	}
	return scaled, nil
}

// SetVisible is a no-op: the overlay window is owned by the engine, not
// the backend.
func (b *genericBackend) SetVisible(visible bool) error {
	if b.disposed {
		return ErrBackendDisposed
	}
	return nil
}

func (b *genericBackend) Dispose() {
	b.disposed = true
	b.initialized = false
}
