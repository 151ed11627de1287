package magnifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"goscope/frame"
	"goscope/overlay"
	"goscope/screenshot"
)

// ErrEngineDisposed is returned when the engine is used after Dispose.
var ErrEngineDisposed = errors.New("engine disposed")

// Engine ties a backend, the overlay window and the refresh timer together.
//
// All methods must be called on the goroutine running Run; other goroutines
// (hotkeys, tray, preferences UI) hand work over through Dispatch.
type Engine struct {
	cfg Config

	backend Backend
	window  overlay.Window
	native  bool

	tasks  chan func()
	ticker *time.Ticker

	visible     bool
	initialized bool
	disposed    bool
	lastFrame   *frame.Frame

	// Constructor hooks, replaced in tests.
	newNative  func() Backend
	newGeneric func() Backend
	newWindow  func(overlay.Options) (overlay.Window, error)
}

// New creates an engine with the given configuration. Call Initialize before
// Run.
func New(cfg Config) *Engine {
	cfg.Normalize()
	return &Engine{
		cfg:        cfg,
		tasks:      make(chan func(), 64),
		newNative:  newNativeBackend,
		newGeneric: newGenericBackend,
		newWindow:  overlay.New,
	}
}

// Initialize selects a backend and creates the overlay window. The native
// backend is tried first when configured; if it reports itself unavailable
// the generic capture backend takes over. Failure of both is fatal.
func (e *Engine) Initialize() error {
	if e.disposed {
		return ErrEngineDisposed
	}
	if e.initialized {
		return nil
	}

	if e.cfg.PreferNative {
		b := e.newNative()
		if err := b.Init(); err != nil {
			b.Dispose()
			if errors.Is(err, ErrBackendUnavailable) {
				log.Printf("magnifier: native backend unavailable: %v", err)
			} else {
				log.Printf("magnifier: native backend failed to initialize: %v", err)
			}
		} else {
			e.backend = b
			e.native = true
		}
	}
	if e.backend == nil {
		g := e.newGeneric()
		if err := g.Init(); err != nil {
			g.Dispose()
			return fmt.Errorf("no usable magnification backend: %w", err)
		}
		e.backend = g
		e.native = false
	}

	x, y := e.windowOrigin()
	w, err := e.newWindow(overlay.Options{
		X:      x,
		Y:      y,
		Width:  e.cfg.OutputWidth,
		Height: e.cfg.OutputHeight,
		Shape:  shapeOf(e.cfg),
	})
	if err != nil {
		e.backend.Dispose()
		e.backend = nil
		return fmt.Errorf("failed to create overlay window: %w", err)
	}
	e.window = w

	if err := e.backend.Configure(e.cfg); err != nil {
		e.Dispose()
		return fmt.Errorf("initial configuration rejected: %w", err)
	}
	e.initialized = true
	log.Printf("magnifier: initialized with %s backend, %dx%d at %d Hz, zoom %.2f",
		e.backend.Name(), e.cfg.OutputWidth, e.cfg.OutputHeight, e.cfg.RefreshRateHz, e.cfg.ZoomLevel)
	return nil
}

// Run drives the refresh loop until ctx is cancelled. Ticks are skipped
// while the magnifier is hidden, so a hidden engine costs nothing beyond
// the timer itself.
func (e *Engine) Run(ctx context.Context) error {
	if e.disposed {
		return ErrEngineDisposed
	}
	if !e.initialized {
		return fmt.Errorf("engine not initialized")
	}

	e.ticker = time.NewTicker(tickInterval(e.cfg.RefreshRateHz))
	defer func() {
		e.ticker.Stop()
		e.ticker = nil
	}()
	log.Printf("magnifier: engine running at %d Hz", e.cfg.RefreshRateHz)

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-e.tasks:
			fn()
		case <-e.ticker.C:
			e.tick()
		}
	}
}

// Dispatch schedules fn on the engine goroutine. Used by hotkey, tray and
// preferences callbacks, which all fire on foreign threads.
func (e *Engine) Dispatch(fn func()) {
	e.tasks <- fn
}

func (e *Engine) tick() {
	if e.disposed || !e.visible || e.backend == nil {
		return
	}

	f, err := e.backend.Tick(e.cfg)
	if err != nil {
		if e.native {
			log.Printf("magnifier: native backend failed mid-session: %v", err)
			e.fallbackToGeneric()
		} else {
			// Transient capture failures keep the last frame on screen.
			log.Printf("magnifier: capture failed: %v", err)
		}
		return
	}
	if f != nil {
		if err := e.window.Present(f); err != nil {
			log.Printf("magnifier: present failed: %v", err)
		} else {
			e.lastFrame = f
		}
	}
	e.window.Pump()
}

// fallbackToGeneric replaces a failed native backend with the generic one
// for the rest of the session. The overlay window takes over presentation.
func (e *Engine) fallbackToGeneric() {
	old := e.backend
	e.backend = nil
	e.native = false
	old.Dispose()

	g := e.newGeneric()
	if err := g.Init(); err != nil {
		g.Dispose()
		log.Printf("magnifier: generic fallback unavailable, hiding: %v", err)
		e.visible = false
		e.window.Hide()
		return
	}
	e.backend = g
	if err := g.Configure(e.cfg); err != nil {
		log.Printf("magnifier: fallback configuration rejected: %v", err)
	}
	e.applyWindowGeometry()
	if e.visible {
		if err := e.window.Show(); err != nil {
			log.Printf("magnifier: failed to show overlay after fallback: %v", err)
		}
	}
	log.Printf("magnifier: switched to generic capture backend")
}

// Show makes the magnifier visible. Geometry and zoom are applied before
// the surface is revealed so the first visible frame is already correct.
func (e *Engine) Show() error {
	if e.disposed {
		return ErrEngineDisposed
	}
	if !e.initialized {
		return fmt.Errorf("engine not initialized")
	}
	if e.visible {
		return nil
	}

	if err := e.backend.Configure(e.cfg); err != nil {
		log.Printf("magnifier: reconfigure before show failed: %v", err)
	}
	if e.native {
		if err := e.backend.SetVisible(true); err != nil {
			return err
		}
	} else {
		e.applyWindowGeometry()
		if err := e.window.Show(); err != nil {
			return err
		}
	}
	e.visible = true
	return nil
}

// Hide conceals the magnifier. Refresh ticks are suppressed while hidden.
func (e *Engine) Hide() error {
	if e.disposed {
		return ErrEngineDisposed
	}
	if !e.visible {
		return nil
	}
	if e.native {
		if err := e.backend.SetVisible(false); err != nil {
			return err
		}
	} else {
		if err := e.window.Hide(); err != nil {
			return err
		}
	}
	e.visible = false
	return nil
}

// Toggle flips visibility and reports the new state.
func (e *Engine) Toggle() (bool, error) {
	if e.visible {
		return false, e.Hide()
	}
	return true, e.Show()
}

// Visible reports whether the magnifier is currently shown.
func (e *Engine) Visible() bool { return e.visible }

// Config returns a snapshot of the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetZoom sets the magnification level, clamped to [MinZoom, MaxZoom].
// The preset selection is untouched; the next preset toggle still alternates
// from whichever preset was last active.
func (e *Engine) SetZoom(level float64) {
	e.updateConfig(func(c *Config) { c.ZoomLevel = clampZoom(level) })
}

// SetZoomLevels updates both preset levels and reapplies the active one.
func (e *Engine) SetZoomLevels(low, high float64) {
	e.updateConfig(func(c *Config) {
		c.ZoomLevelLow = clampZoom(low)
		c.ZoomLevelHigh = clampZoom(high)
		if c.ZoomPreset == PresetHigh {
			c.ZoomLevel = c.ZoomLevelHigh
		} else {
			c.ZoomLevel = c.ZoomLevelLow
		}
	})
}

// ToggleZoomPreset alternates between the low and high zoom levels and
// returns the preset now active.
func (e *Engine) ToggleZoomPreset() ZoomPreset {
	next := PresetHigh
	if e.cfg.ZoomPreset == PresetHigh {
		next = PresetLow
	}
	e.updateConfig(func(c *Config) {
		c.ZoomPreset = next
		if next == PresetHigh {
			c.ZoomLevel = c.ZoomLevelHigh
		} else {
			c.ZoomLevel = c.ZoomLevelLow
		}
	})
	return e.cfg.ZoomPreset
}

// SetOffsets displaces the capture center from the screen center.
func (e *Engine) SetOffsets(x, y int) {
	e.updateConfig(func(c *Config) {
		c.XOffset = x
		c.YOffset = y
	})
}

// SetOutputSize changes the lens dimensions. Non-positive sizes are ignored.
func (e *Engine) SetOutputSize(width, height int) {
	if width <= 0 || height <= 0 {
		log.Printf("magnifier: ignoring invalid output size %dx%d", width, height)
		return
	}
	e.updateConfig(func(c *Config) {
		c.OutputWidth = width
		c.OutputHeight = height
	})
}

// SetCircular switches between the circular and rectangular lens shape.
func (e *Engine) SetCircular(circular bool) {
	e.updateConfig(func(c *Config) { c.Circular = circular })
}

// SetRefreshRate changes the tick frequency, clamped to
// [MinRefreshRateHz, MaxRefreshRateHz]. Takes effect on the next tick.
func (e *Engine) SetRefreshRate(hz int) {
	hz = clampRefreshRate(hz)
	if hz == e.cfg.RefreshRateHz {
		return
	}
	e.cfg.RefreshRateHz = hz
	if e.ticker != nil {
		e.ticker.Reset(tickInterval(hz))
	}
	log.Printf("magnifier: refresh rate set to %d Hz", hz)
}

// updateConfig applies a mutation and pushes it to the backend and window.
// If the backend rejects the new configuration the previous one is restored.
func (e *Engine) updateConfig(mutate func(*Config)) {
	prev := e.cfg
	mutate(&e.cfg)
	if e.cfg == prev {
		return
	}
	if err := e.applyConfig(); err != nil {
		log.Printf("magnifier: configuration rejected, keeping previous: %v", err)
		e.cfg = prev
		if restoreErr := e.applyConfig(); restoreErr != nil {
			log.Printf("magnifier: failed to restore previous configuration: %v", restoreErr)
		}
	}
}

func (e *Engine) applyConfig() error {
	if e.backend != nil {
		if err := e.backend.Configure(e.cfg); err != nil {
			return err
		}
	}
	if !e.native && e.window != nil {
		e.applyWindowGeometry()
	}
	return nil
}

func (e *Engine) applyWindowGeometry() {
	x, y := e.windowOrigin()
	if err := e.window.SetGeometry(x, y, e.cfg.OutputWidth, e.cfg.OutputHeight); err != nil {
		log.Printf("magnifier: failed to update overlay geometry: %v", err)
	}
	if err := e.window.SetShape(shapeOf(e.cfg)); err != nil {
		log.Printf("magnifier: failed to update overlay shape: %v", err)
	}
}

// windowOrigin places the lens centered on the primary display, displaced
// by the configured offsets.
func (e *Engine) windowOrigin() (int, int) {
	bounds, err := screenshot.PrimaryBounds()
	if err != nil {
		log.Printf("magnifier: cannot query primary display, placing lens at origin: %v", err)
		return 0, 0
	}
	x := bounds.Min.X + (bounds.Dx()-e.cfg.OutputWidth)/2 + e.cfg.XOffset
	y := bounds.Min.Y + (bounds.Dy()-e.cfg.OutputHeight)/2 + e.cfg.YOffset
	return x, y
}

// SnapshotPNG encodes the current lens content as PNG bytes. The native
// backend never produces a frame, so when it is active (or nothing has been
// presented yet) the source region is captured once through the generic
// pipeline instead.
func (e *Engine) SnapshotPNG() ([]byte, error) {
	if e.disposed {
		return nil, ErrEngineDisposed
	}
	f := e.lastFrame
	if f == nil {
		g := e.newGeneric()
		if err := g.Init(); err != nil {
			return nil, fmt.Errorf("snapshot capture unavailable: %w", err)
		}
		var err error
		f, err = g.Tick(e.cfg)
		g.Dispose()
		if err != nil {
			return nil, fmt.Errorf("snapshot capture failed: %w", err)
		}
	}
	return f.EncodePNG()
}

// Dispose releases the backend and window. The engine cannot be reused.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.visible = false
	e.initialized = false
	if e.backend != nil {
		e.backend.Dispose()
		e.backend = nil
	}
	if e.window != nil {
		e.window.Destroy()
		e.window = nil
	}
	e.lastFrame = nil
}

func tickInterval(hz int) time.Duration {
	return time.Second / time.Duration(hz)
}

func shapeOf(cfg Config) overlay.Shape {
	if cfg.Circular {
		return overlay.Circle
	}
	return overlay.Rectangle
}
