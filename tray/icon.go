package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"runtime"
)

const iconSize = 16

// iconBytes renders a simple magnifying-lens glyph at runtime: a PNG on
// most platforms, wrapped in a single-image ICO container on Windows.
func iconBytes() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	lens := color.RGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff}
	const (
		centerX = 6.5
		centerY = 6.5
		radius  = 5.0
	)
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			d := math.Hypot(float64(x)-centerX, float64(y)-centerY)
			if d >= radius-1.2 && d <= radius+0.4 {
				img.SetRGBA(x, y, lens)
			}
		}
	}
	// Handle toward the lower right corner.
	for i := 0; i < 5; i++ {
		img.SetRGBA(10+i, 10+i, lens)
		img.SetRGBA(11+i, 10+i, lens)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("Failed to encode tray icon: %v", err)
		return nil
	}
	if runtime.GOOS == "windows" {
		return icoWrap(buf.Bytes())
	}
	return buf.Bytes()
}

// icoWrap builds a minimal ICO container around PNG data. PNG payloads in
// ICO files are supported since Vista.
func icoWrap(pngData []byte) []byte {
	var buf bytes.Buffer
	// ICONDIR: reserved, type 1 (icon), one image.
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	// ICONDIRENTRY
	buf.WriteByte(iconSize)
	buf.WriteByte(iconSize)
	buf.WriteByte(0) // palette colors
	buf.WriteByte(0) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))            // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32))           // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData))) // size
	binary.Write(&buf, binary.LittleEndian, uint32(22))           // offset
	buf.Write(pngData)
	return buf.Bytes()
}
