//go:build windows

package overlay

import (
	"fmt"
	"log"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"goscope/frame"
)

const (
	overlayClassName = "GoscopeOverlay"

	// Not exposed by lxn/win.
	wsExNoActivate        = 0x08000000
	lwaAlpha              = 0x00000002
	wdaExcludeFromCapture = 0x00000011
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	gdi32                        = windows.NewLazySystemDLL("gdi32.dll")
	procSetLayeredWindowAttrs    = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowDisplayAffinity = user32.NewProc("SetWindowDisplayAffinity")
	procSetWindowRgn             = user32.NewProc("SetWindowRgn")
	procCreateEllipticRgn        = gdi32.NewProc("CreateEllipticRgn")
)

var (
	overlayClassRegistered bool
	overlayWindows         = map[win.HWND]*platformWindow{}
)

type platformWindow struct {
	hwnd    win.HWND
	x, y    int
	width   int
	height  int
	shape   Shape
	visible bool
	last    *frame.Frame
}

func newPlatformWindow(opts Options) (Window, error) {
	if err := registerOverlayClass(); err != nil {
		return nil, err
	}

	w := &platformWindow{
		x:      opts.X,
		y:      opts.Y,
		width:  opts.Width,
		height: opts.Height,
		shape:  opts.Shape,
	}

	hwnd := win.CreateWindowEx(
		win.WS_EX_TOPMOST|win.WS_EX_LAYERED|win.WS_EX_TRANSPARENT|win.WS_EX_TOOLWINDOW|wsExNoActivate,
		syscall.StringToUTF16Ptr(overlayClassName),
		syscall.StringToUTF16Ptr("goscope"),
		win.WS_POPUP,
		int32(opts.X), int32(opts.Y), int32(opts.Width), int32(opts.Height),
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("failed to create overlay window")
	}
	w.hwnd = hwnd
	overlayWindows[hwnd] = w

	// Fully opaque; the layered style is carried for click-through, not fades.
	procSetLayeredWindowAttrs.Call(uintptr(hwnd), 0, 255, lwaAlpha)

	// Keep the magnifier out of screenshots and recordings of the screen
	// beneath it, otherwise recording the magnified region feeds back.
	if ret, _, _ := procSetWindowDisplayAffinity.Call(uintptr(hwnd), wdaExcludeFromCapture); ret == 0 {
		log.Printf("overlay: SetWindowDisplayAffinity failed, window may appear in captures")
	}

	w.applyShape()
	return w, nil
}

func registerOverlayClass() error {
	if overlayClassRegistered {
		return nil
	}
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HbrBackground: 0,
		LpszClassName: syscall.StringToUTF16Ptr(overlayClassName),
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		return fmt.Errorf("failed to register overlay window class")
	}
	overlayClassRegistered = true
	return nil
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		if w := overlayWindows[hwnd]; w != nil && w.last != nil {
			w.blit(hdc, w.last)
		}
		win.EndPaint(hwnd, &ps)
		return 0
	case win.WM_ERASEBKGND:
		// Frames cover the whole client area, erasing only causes flicker.
		return 1
	case win.WM_DESTROY:
		delete(overlayWindows, hwnd)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (w *platformWindow) Show() error {
	if w.hwnd == 0 {
		return fmt.Errorf("overlay window destroyed")
	}
	if w.visible {
		return nil
	}
	// SW_SHOWNA: show without stealing focus from the game underneath.
	win.ShowWindow(w.hwnd, win.SW_SHOWNA)
	win.UpdateWindow(w.hwnd)
	w.visible = true
	return nil
}

func (w *platformWindow) Hide() error {
	if w.hwnd == 0 {
		return fmt.Errorf("overlay window destroyed")
	}
	if !w.visible {
		return nil
	}
	win.ShowWindow(w.hwnd, win.SW_HIDE)
	w.visible = false
	return nil
}

func (w *platformWindow) Visible() bool { return w.visible }

func (w *platformWindow) SetGeometry(x, y, width, height int) error {
	if w.hwnd == 0 {
		return fmt.Errorf("overlay window destroyed")
	}
	resized := width != w.width || height != w.height
	if !win.SetWindowPos(w.hwnd, win.HWND_TOPMOST,
		int32(x), int32(y), int32(width), int32(height), win.SWP_NOACTIVATE) {
		return fmt.Errorf("failed to position overlay window")
	}
	w.x, w.y, w.width, w.height = x, y, width, height
	if resized {
		w.applyShape()
	}
	return nil
}

func (w *platformWindow) SetShape(s Shape) error {
	if w.hwnd == 0 {
		return fmt.Errorf("overlay window destroyed")
	}
	w.shape = s
	w.applyShape()
	return nil
}

// applyShape installs the window region. SetWindowRgn takes ownership of the
// region handle, so it is never deleted here.
func (w *platformWindow) applyShape() {
	if w.shape == Circle {
		rgn, _, _ := procCreateEllipticRgn.Call(0, 0, uintptr(w.width), uintptr(w.height))
		if rgn == 0 {
			log.Printf("overlay: failed to create elliptic region")
			return
		}
		procSetWindowRgn.Call(uintptr(w.hwnd), rgn, 1)
	} else {
		procSetWindowRgn.Call(uintptr(w.hwnd), 0, 1)
	}
}

func (w *platformWindow) Present(f *frame.Frame) error {
	if w.hwnd == 0 {
		return fmt.Errorf("overlay window destroyed")
	}
	w.last = f
	if !w.visible {
		return nil
	}
	hdc := win.GetDC(w.hwnd)
	if hdc == 0 {
		return fmt.Errorf("failed to get overlay device context")
	}
	defer win.ReleaseDC(w.hwnd, hdc)
	w.blit(hdc, f)
	return nil
}

// blit copies the frame into a 32bpp top-down DIB and BitBlts it onto hdc,
// converting RGBA to the BGRA order GDI expects.
func (w *platformWindow) blit(hdc win.HDC, f *frame.Frame) {
	memDC := win.CreateCompatibleDC(hdc)
	if memDC == 0 {
		return
	}
	defer win.DeleteDC(memDC)

	bitmapInfo := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(f.Width),
			BiHeight:      -int32(f.Height), // top-down
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
		},
	}

	var pBits unsafe.Pointer
	hBitmap := win.CreateDIBSection(memDC, &bitmapInfo.BmiHeader, win.DIB_RGB_COLORS, &pBits, 0, 0)
	if hBitmap == 0 {
		return
	}
	defer win.DeleteObject(win.HGDIOBJ(hBitmap))

	oldBitmap := win.SelectObject(memDC, win.HGDIOBJ(hBitmap))
	defer win.SelectObject(memDC, oldBitmap)

	src := f.Img.Pix
	srcStride := f.Img.Stride
	dstStride := ((f.Width*32 + 31) &^ 31) / 8
	dst := (*[1 << 30]byte)(pBits)
	for y := 0; y < f.Height; y++ {
		srcRow := src[y*srcStride:]
		dstRow := dst[y*dstStride:]
		for x := 0; x < f.Width; x++ {
			si := x * 4
			dstRow[si] = srcRow[si+2]   // B
			dstRow[si+1] = srcRow[si+1] // G
			dstRow[si+2] = srcRow[si]   // R
			dstRow[si+3] = srcRow[si+3] // A
		}
	}

	win.BitBlt(hdc, 0, 0, int32(f.Width), int32(f.Height), memDC, 0, 0, win.SRCCOPY)
}

func (w *platformWindow) Pump() {
	var msg win.MSG
	for win.PeekMessage(&msg, w.hwnd, 0, 0, win.PM_REMOVE) {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func (w *platformWindow) Destroy() {
	if w.hwnd == 0 {
		return
	}
	win.DestroyWindow(w.hwnd)
	delete(overlayWindows, w.hwnd)
	w.hwnd = 0
	w.visible = false
	w.last = nil
}
