package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"
)

func TestIconBytesNotEmpty(t *testing.T) {
	data := iconBytes()
	if len(data) == 0 {
		t.Fatal("iconBytes() returned no data")
	}
}

func TestIcoWrapHeader(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	ico := icoWrap(payload)

	if len(ico) != 22+len(payload) {
		t.Fatalf("ico length = %d, want %d", len(ico), 22+len(payload))
	}
	if typ := binary.LittleEndian.Uint16(ico[2:4]); typ != 1 {
		t.Errorf("ico type = %d, want 1", typ)
	}
	if count := binary.LittleEndian.Uint16(ico[4:6]); count != 1 {
		t.Errorf("ico image count = %d, want 1", count)
	}
	if size := binary.LittleEndian.Uint32(ico[14:18]); size != uint32(len(payload)) {
		t.Errorf("payload size = %d, want %d", size, len(payload))
	}
	if offset := binary.LittleEndian.Uint32(ico[18:22]); offset != 22 {
		t.Errorf("payload offset = %d, want 22", offset)
	}
	if !bytes.Equal(ico[22:], payload) {
		t.Error("payload bytes not preserved")
	}
}

func TestIconRendersValidPNG(t *testing.T) {
	img := iconBytes()
	// On Windows the PNG sits inside the ICO container.
	if len(img) > 22 && img[0] == 0 && img[2] == 1 {
		img = img[22:]
	}
	decoded, err := png.Decode(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("icon is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != iconSize || decoded.Bounds().Dy() != iconSize {
		t.Errorf("icon size = %v, want %dx%d", decoded.Bounds(), iconSize, iconSize)
	}
}
