// Package overlay provides the magnifier output window: always-on-top,
// frameless, click-through, excluded from capture by other applications, and
// optionally clipped to a circle. Geometry and visibility are mutated only by
// the engine, from the engine's owning goroutine.
package overlay

import "goscope/frame"

// Shape selects the visible area of the window.
type Shape int

const (
	// Rectangle makes the full window bounds visible.
	Rectangle Shape = iota
	// Circle restricts the visible area to the ellipse inscribed in the
	// window bounds.
	Circle
)

func (s Shape) String() string {
	if s == Circle {
		return "circle"
	}
	return "rectangle"
}

// Options describes the initial window geometry and shape.
type Options struct {
	X      int
	Y      int
	Width  int
	Height int
	Shape  Shape
}

// Window is the overlay surface the engine paints generic-backend frames
// into. All methods must be called from the owning goroutine.
type Window interface {
	Show() error
	Hide() error
	Visible() bool

	// SetGeometry moves and resizes the window, reapplying the shape mask
	// when the size changed.
	SetGeometry(x, y, width, height int) error
	SetShape(s Shape) error

	// Present replaces the displayed pixels with f. The window keeps a
	// reference to f for repaints until the next Present call.
	Present(f *frame.Frame) error

	// Pump drains pending window messages without blocking. No-op on
	// platforms without a message queue.
	Pump()

	Destroy()
}

// New creates the platform overlay window. The non-Windows build returns a
// headless window that tracks state without a display surface.
func New(opts Options) (Window, error) {
	return newPlatformWindow(opts)
}
