//go:build !windows

package overlay

import (
	"log"

	"goscope/frame"
)

// headlessWindow tracks overlay state without a display surface. The generic
// capture path still runs on non-Windows builds; presentation is limited to
// bookkeeping until a platform surface is added.
type headlessWindow struct {
	x, y          int
	width, height int
	shape         Shape
	visible       bool
	last          *frame.Frame
	presented     int
}

func newPlatformWindow(opts Options) (Window, error) {
	log.Printf("overlay: no native window surface on this platform, running headless")
	return &headlessWindow{
		x:      opts.X,
		y:      opts.Y,
		width:  opts.Width,
		height: opts.Height,
		shape:  opts.Shape,
	}, nil
}

func (w *headlessWindow) Show() error {
	w.visible = true
	return nil
}

func (w *headlessWindow) Hide() error {
	w.visible = false
	return nil
}

func (w *headlessWindow) Visible() bool { return w.visible }

func (w *headlessWindow) SetGeometry(x, y, width, height int) error {
	w.x, w.y, w.width, w.height = x, y, width, height
	return nil
}

func (w *headlessWindow) SetShape(s Shape) error {
	w.shape = s
	return nil
}

func (w *headlessWindow) Present(f *frame.Frame) error {
	w.last = f
	w.presented++
	return nil
}

func (w *headlessWindow) Pump() {}

func (w *headlessWindow) Destroy() {
	w.visible = false
	w.last = nil
}
