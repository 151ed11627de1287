package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func gradientFrame(w, h int) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return New(img)
}

func TestScaleDimensions(t *testing.T) {
	f := gradientFrame(200, 200)
	out, err := f.Scale(400, 400)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if out.Width != 400 || out.Height != 400 {
		t.Errorf("expected 400x400, got %dx%d", out.Width, out.Height)
	}
	if out.Layout != RGBA {
		t.Errorf("scaled frame layout = %v, want RGBA", out.Layout)
	}
}

func TestScaleSameSizeReturnsSameFrame(t *testing.T) {
	f := gradientFrame(100, 100)
	out, err := f.Scale(100, 100)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if out != f {
		t.Error("identity scale should not reallocate the frame")
	}
}

func TestScaleRejectsInvalidSize(t *testing.T) {
	f := gradientFrame(10, 10)
	if _, err := f.Scale(0, 400); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := f.Scale(400, -1); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestScaleSmoothsUniformRegions(t *testing.T) {
	// A solid-color source must stay solid after Lanczos upscaling.
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 200, B: 30, A: 255})
		}
	}
	out, err := New(img).Scale(200, 200)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	c := out.Img.RGBAAt(100, 100)
	if c.R != 10 || c.G != 200 || c.B != 30 {
		t.Errorf("center pixel changed to %+v", c)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	f := gradientFrame(32, 16)
	data, err := f.EncodePNG()
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("encoded data is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 32 || decoded.Bounds().Dy() != 16 {
		t.Errorf("decoded size %v, want 32x16", decoded.Bounds())
	}
}
