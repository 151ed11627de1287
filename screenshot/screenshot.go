// Package screenshot wraps raw pixel capture and display geometry queries.
// All coordinates are in the single virtual-screen space spanning every
// monitor, which is what the region mapper and backends operate in.
package screenshot

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"goscope/frame"
	"goscope/region"
)

// NumDisplays reports the number of active displays.
func NumDisplays() int {
	return screenshot.NumActiveDisplays()
}

// PrimaryBounds returns the bounds of the primary display.
func PrimaryBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	return screenshot.GetDisplayBounds(0), nil
}

// VirtualBounds returns the union of all display bounds. On multi-monitor
// setups the origin may be negative.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

// CaptureRegion grabs the pixels covering r and returns them as an RGBA frame.
func CaptureRegion(r region.Region) (*frame.Frame, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("invalid region dimensions: width=%d, height=%d", r.Width, r.Height)
	}

	bounds := image.Rect(r.Left, r.Top, r.Right(), r.Bottom())
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %v", err)
	}
	return frame.New(img), nil
}
