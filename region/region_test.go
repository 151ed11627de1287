package region

import "testing"

func TestComputeCenteredZoom(t *testing.T) {
	// 400x400 output at 2x zoom on a 1920x1080 screen captures a 200x200
	// square centered on the screen.
	r := Compute(1920, 1080, 400, 400, 2.0, 0, 0)
	if r.Width != 200 || r.Height != 200 {
		t.Errorf("expected 200x200 source, got %dx%d", r.Width, r.Height)
	}
	if r.Left != 860 || r.Top != 440 {
		t.Errorf("expected origin (860,440), got (%d,%d)", r.Left, r.Top)
	}
}

func TestComputeZoomOneIsIdentitySize(t *testing.T) {
	r := Compute(1920, 1080, 400, 300, 1.0, 0, 0)
	if r.Width != 400 || r.Height != 300 {
		t.Errorf("at zoom=1 source should equal output size, got %dx%d", r.Width, r.Height)
	}
}

func TestComputeRounding(t *testing.T) {
	tests := []struct {
		out  int
		zoom float64
		want int
	}{
		{400, 3.0, 133}, // 133.33 rounds down
		{400, 2.4, 167}, // 166.67 rounds up
		{401, 2.0, 201}, // 200.5 rounds half away from zero
		{1, 20.0, 1},    // never below one pixel
	}
	for _, tt := range tests {
		r := Compute(1920, 1080, tt.out, tt.out, tt.zoom, 0, 0)
		if r.Width != tt.want {
			t.Errorf("Compute out=%d zoom=%.1f: width=%d, want %d", tt.out, tt.zoom, r.Width, tt.want)
		}
	}
}

func TestComputeOffsetBiasesCenter(t *testing.T) {
	base := Compute(1920, 1080, 400, 400, 2.0, 0, 0)
	r := Compute(1920, 1080, 400, 400, 2.0, 50, -30)
	if r.Left != base.Left+50 || r.Top != base.Top-30 {
		t.Errorf("offset (50,-30) moved origin from (%d,%d) to (%d,%d)",
			base.Left, base.Top, r.Left, r.Top)
	}
}

func TestComputeClampsToScreenEdges(t *testing.T) {
	tests := []struct {
		name             string
		xOffset, yOffset int
	}{
		{"far right", 10000, 0},
		{"far left", -10000, 0},
		{"far down", 0, 10000},
		{"far up", 0, -10000},
		{"corner", 10000, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(1920, 1080, 400, 400, 2.0, tt.xOffset, tt.yOffset)
			if r.Left < 0 || r.Top < 0 {
				t.Errorf("origin out of bounds: (%d,%d)", r.Left, r.Top)
			}
			if r.Right() > 1920 || r.Bottom() > 1080 {
				t.Errorf("region exceeds screen: right=%d bottom=%d", r.Right(), r.Bottom())
			}
			// Clamping translates, it never shrinks.
			if r.Width != 200 || r.Height != 200 {
				t.Errorf("clamping resized region to %dx%d", r.Width, r.Height)
			}
		})
	}
}

func TestComputeBoundsInvariant(t *testing.T) {
	screens := [][2]int{{1920, 1080}, {2560, 1440}, {1366, 768}, {800, 600}}
	zooms := []float64{1.0, 1.5, 2.0, 4.0, 10.0, 20.0}
	offsets := []int{-5000, -250, -1, 0, 1, 250, 5000}

	for _, s := range screens {
		for _, z := range zooms {
			for _, xo := range offsets {
				for _, yo := range offsets {
					r := Compute(s[0], s[1], 400, 400, z, xo, yo)
					if r.Left < 0 || r.Top < 0 || r.Right() > s[0] || r.Bottom() > s[1] {
						t.Fatalf("screen %dx%d zoom %.1f offset (%d,%d): region %+v out of bounds",
							s[0], s[1], z, xo, yo, r)
					}
				}
			}
		}
	}
}

func TestComputeOversizedSourceClampedToScreen(t *testing.T) {
	// Output larger than the screen at zoom 1: the source cannot exceed the
	// screen, so the size itself is clamped.
	r := Compute(800, 600, 1024, 768, 1.0, 0, 0)
	if r.Width != 800 || r.Height != 600 {
		t.Errorf("expected source clamped to 800x600, got %dx%d", r.Width, r.Height)
	}
	if r.Left != 0 || r.Top != 0 {
		t.Errorf("expected origin (0,0), got (%d,%d)", r.Left, r.Top)
	}
}
