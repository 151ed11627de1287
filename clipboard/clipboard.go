package clipboard

import (
	"fmt"
	"log"

	xclipboard "golang.design/x/clipboard"
)

var initialized bool

// Init prepares the system clipboard. Must succeed before writes.
func Init() error {
	if initialized {
		return nil
	}
	if err := xclipboard.Init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %v", err)
	}
	initialized = true
	return nil
}

// WriteImagePNG places a PNG-encoded image on the clipboard, where paste
// targets see it as a regular image.
func WriteImagePNG(data []byte) error {
	if !initialized {
		return fmt.Errorf("clipboard not initialized")
	}
	if len(data) == 0 {
		return fmt.Errorf("refusing to copy empty image data")
	}
	xclipboard.Write(xclipboard.FmtImage, data)
	log.Printf("Copied %d byte PNG snapshot to clipboard", len(data))
	return nil
}
