// Package frame holds the displayable pixel buffer produced once per refresh
// tick. Exactly one frame is live at a time; producing a new one replaces the
// previous buffer, no history is kept.
package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/nfnt/resize"
)

// Layout tags the channel order of the pixel buffer.
type Layout int

const (
	// RGBA is the canonical layout every capture is converted to.
	RGBA Layout = iota
	// BGRA is the Windows DIB layout used when presenting.
	BGRA
)

func (l Layout) String() string {
	if l == BGRA {
		return "BGRA"
	}
	return "RGBA"
}

// Frame is an immutable pixel buffer plus its dimensions and channel layout.
type Frame struct {
	Img    *image.RGBA
	Width  int
	Height int
	Layout Layout
}

// New wraps an RGBA image as a frame.
func New(img *image.RGBA) *Frame {
	b := img.Bounds()
	return &Frame{Img: img, Width: b.Dx(), Height: b.Dy(), Layout: RGBA}
}

// Scale resamples the frame to outW x outH with a Lanczos filter. A smooth
// filter is required here: nearest-neighbor output is visibly blocky at the
// zoom levels the magnifier runs at.
func (f *Frame) Scale(outW, outH int) (*Frame, error) {
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", outW, outH)
	}
	if f.Width == outW && f.Height == outH {
		return f, nil
	}

	scaled := resize.Resize(uint(outW), uint(outH), f.Img, resize.Lanczos3)
	rgba, ok := scaled.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, outW, outH))
		draw.Draw(rgba, rgba.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	}
	return New(rgba), nil
}

// EncodePNG renders the frame as PNG bytes, e.g. for clipboard snapshots.
func (f *Frame) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Img); err != nil {
		return nil, fmt.Errorf("failed to encode frame as PNG: %v", err)
	}
	return buf.Bytes(), nil
}
