// Package region computes the source capture rectangle for a magnification
// frame. It is pure math with no capture or window dependencies so the
// mapping can be tested in isolation.
package region

import "math"

// Region is a source rectangle in screen pixel coordinates.
type Region struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Region) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Region) Bottom() int { return r.Top + r.Height }

// Compute maps output geometry, zoom and offsets to the screen rectangle that
// must be captured. The capture center is the screen center displaced by the
// offsets. A higher zoom captures a smaller source area: the source size is
// round(out/zoom). The rectangle is translated (never resized) to stay within
// [0,screenW]x[0,screenH]; if the source would exceed the screen (zoom < 1,
// guarded by config elsewhere), the size is clamped to the screen first.
func Compute(screenW, screenH, outW, outH int, zoom float64, xOffset, yOffset int) Region {
	if zoom < 1.0 {
		zoom = 1.0
	}

	srcW := int(math.Round(float64(outW) / zoom))
	srcH := int(math.Round(float64(outH) / zoom))
	if srcW < 1 {
		srcW = 1
	}
	if srcH < 1 {
		srcH = 1
	}
	if srcW > screenW {
		srcW = screenW
	}
	if srcH > screenH {
		srcH = screenH
	}

	centerX := screenW/2 + xOffset
	centerY := screenH/2 + yOffset

	left := clamp(centerX-srcW/2, 0, screenW-srcW)
	top := clamp(centerY-srcH/2, 0, screenH-srcH)

	return Region{Left: left, Top: top, Width: srcW, Height: srcH}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
