//go:build !windows

package overlay

import (
	"image"
	"testing"

	"goscope/frame"
)

func TestHeadlessWindowTracksState(t *testing.T) {
	w, err := New(Options{X: 10, Y: 20, Width: 400, Height: 400, Shape: Circle})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Destroy()

	if w.Visible() {
		t.Error("window visible before Show")
	}
	if err := w.Show(); err != nil {
		t.Fatalf("Show() failed: %v", err)
	}
	if !w.Visible() {
		t.Error("window not visible after Show")
	}

	if err := w.SetGeometry(0, 0, 320, 240); err != nil {
		t.Errorf("SetGeometry() failed: %v", err)
	}
	if err := w.SetShape(Rectangle); err != nil {
		t.Errorf("SetShape() failed: %v", err)
	}

	f := frame.New(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err := w.Present(f); err != nil {
		t.Errorf("Present() failed: %v", err)
	}
	w.Pump()

	hw := w.(*headlessWindow)
	if hw.last != f || hw.presented != 1 {
		t.Errorf("presentation not recorded: presented=%d", hw.presented)
	}
	if hw.width != 320 || hw.height != 240 || hw.shape != Rectangle {
		t.Errorf("geometry not recorded: %dx%d shape %v", hw.width, hw.height, hw.shape)
	}

	if err := w.Hide(); err != nil {
		t.Fatalf("Hide() failed: %v", err)
	}
	if w.Visible() {
		t.Error("window still visible after Hide")
	}
}

func TestHeadlessGuideTracksState(t *testing.T) {
	g := NewGuide()
	defer g.Destroy()

	cfg := GuideConfig{Width: 400, Height: 400, XOffset: 10, YOffset: -10, Circular: true}
	if err := g.Show(cfg); err != nil {
		t.Fatalf("Show() failed: %v", err)
	}

	cfg.XOffset = 50
	if err := g.Update(cfg); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	hg := g.(*headlessGuide)
	if !hg.visible || hg.cfg.XOffset != 50 {
		t.Errorf("guide state not recorded: visible=%v cfg=%+v", hg.visible, hg.cfg)
	}

	g.Hide()
	if hg.visible {
		t.Error("guide still visible after Hide")
	}
}
