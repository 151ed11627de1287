//go:build windows

package magnifier

import (
	"fmt"
	"log"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"goscope/frame"
	"goscope/region"
)

const (
	hostClassName = "GoscopeMagnifierHost"
	// WC_MAGNIFIER, registered by MagInitialize.
	magnifierClassName = "Magnifier"

	msShowMagnifiedCursor = 0x0001

	nativeWsExNoActivate        = 0x08000000
	nativeLwaAlpha              = 0x00000002
	nativeWdaExcludeFromCapture = 0x00000011
)

var (
	magDLL                    = windows.NewLazySystemDLL("magnification.dll")
	procMagInitialize         = magDLL.NewProc("MagInitialize")
	procMagUninitialize       = magDLL.NewProc("MagUninitialize")
	procMagSetWindowTransform = magDLL.NewProc("MagSetWindowTransform")
	procMagSetWindowSource    = magDLL.NewProc("MagSetWindowSource")

	nativeUser32                 = windows.NewLazySystemDLL("user32.dll")
	procNativeSetLayeredAttrs    = nativeUser32.NewProc("SetLayeredWindowAttributes")
	procNativeSetDisplayAffinity = nativeUser32.NewProc("SetWindowDisplayAffinity")
	procNativeSetWindowRgn       = nativeUser32.NewProc("SetWindowRgn")

	nativeGdi32           = windows.NewLazySystemDLL("gdi32.dll")
	procNativeEllipticRgn = nativeGdi32.NewProc("CreateEllipticRgn")
	procNativeRectRgn     = nativeGdi32.NewProc("CreateRectRgn")

	hostClassRegistered bool
)

// magTransform is the 3x3 MAGTRANSFORM matrix. Only the diagonal is used:
// [0][0] and [1][1] carry the magnification factor, [2][2] is 1.
type magTransform struct {
	v [3][3]float32
}

// nativeBackend drives the Windows Magnification API. It owns a layered
// click-through host window with a WC_MAGNIFIER child; the API composites
// the magnified source directly, so Tick only moves the source rectangle
// and returns no frame.
type nativeBackend struct {
	host win.HWND
	mag  win.HWND

	magInitialized bool
	initialized    bool
	disposed       bool
	visible        bool
}

func newNativeBackend() Backend { return &nativeBackend{} }

func (b *nativeBackend) Name() string { return "native" }

func (b *nativeBackend) Init() error {
	if b.disposed {
		return ErrBackendDisposed
	}
	if b.initialized {
		return nil
	}

	if err := magDLL.Load(); err != nil {
		return fmt.Errorf("magnification.dll not loadable: %w", ErrBackendUnavailable)
	}
	if ret, _, _ := procMagInitialize.Call(); ret == 0 {
		return fmt.Errorf("MagInitialize failed: %w", ErrBackendUnavailable)
	}
	b.magInitialized = true

	if err := b.createWindows(); err != nil {
		b.Dispose()
		return err
	}
	b.initialized = true
	log.Printf("magnifier: native magnification backend ready")
	return nil
}

func (b *nativeBackend) createWindows() error {
	if !hostClassRegistered {
		wndClass := win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			LpfnWndProc:   syscall.NewCallback(hostWndProc),
			HInstance:     win.GetModuleHandle(nil),
			HbrBackground: 0,
			LpszClassName: syscall.StringToUTF16Ptr(hostClassName),
		}
		if win.RegisterClassEx(&wndClass) == 0 {
			return fmt.Errorf("failed to register magnifier host class")
		}
		hostClassRegistered = true
	}

	// Layered and transparent so clicks pass through to whatever is under
	// the lens; created hidden, SetVisible shows it after the first
	// Configure has positioned it.
	host := win.CreateWindowEx(
		win.WS_EX_TOPMOST|win.WS_EX_LAYERED|win.WS_EX_TRANSPARENT|win.WS_EX_TOOLWINDOW|nativeWsExNoActivate,
		syscall.StringToUTF16Ptr(hostClassName),
		syscall.StringToUTF16Ptr("goscope"),
		win.WS_POPUP,
		0, 0, 1, 1,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if host == 0 {
		return fmt.Errorf("failed to create magnifier host window")
	}
	procNativeSetLayeredAttrs.Call(uintptr(host), 0, 255, nativeLwaAlpha)
	if ret, _, _ := procNativeSetDisplayAffinity.Call(uintptr(host), nativeWdaExcludeFromCapture); ret == 0 {
		log.Printf("magnifier: capture exclusion not supported, lens may appear in recordings")
	}

	mag := win.CreateWindowEx(
		0,
		syscall.StringToUTF16Ptr(magnifierClassName),
		syscall.StringToUTF16Ptr(""),
		win.WS_CHILD|win.WS_VISIBLE|msShowMagnifiedCursor,
		0, 0, 1, 1,
		host, 0, win.GetModuleHandle(nil), nil,
	)
	if mag == 0 {
		return fmt.Errorf("failed to create magnifier control")
	}

	b.host = host
	b.mag = mag
	return nil
}

func (b *nativeBackend) Configure(cfg Config) error {
	if b.disposed {
		return ErrBackendDisposed
	}
	if !b.initialized {
		return fmt.Errorf("native backend not initialized")
	}

	screenW := int(win.GetSystemMetrics(win.SM_CXSCREEN))
	screenH := int(win.GetSystemMetrics(win.SM_CYSCREEN))
	x := screenW/2 + cfg.XOffset - cfg.OutputWidth/2
	y := screenH/2 + cfg.YOffset - cfg.OutputHeight/2

	win.SetWindowPos(b.host, win.HWND_TOPMOST, int32(x), int32(y),
		int32(cfg.OutputWidth), int32(cfg.OutputHeight), win.SWP_NOACTIVATE)
	win.MoveWindow(b.mag, 0, 0, int32(cfg.OutputWidth), int32(cfg.OutputHeight), true)

	var t magTransform
	t.v[0][0] = float32(cfg.ZoomLevel)
	t.v[1][1] = float32(cfg.ZoomLevel)
	t.v[2][2] = 1
	if ret, _, _ := procMagSetWindowTransform.Call(uintptr(b.mag), uintptr(unsafe.Pointer(&t))); ret == 0 {
		return fmt.Errorf("magnification transform %.2f rejected", cfg.ZoomLevel)
	}

	b.applyShape(cfg)
	return nil
}

// applyShape clips the host window to a circle or resets it to the full
// rectangle. The region handle is owned by the window after SetWindowRgn.
func (b *nativeBackend) applyShape(cfg Config) {
	var rgn uintptr
	if cfg.Circular {
		rgn, _, _ = procNativeEllipticRgn.Call(0, 0, uintptr(cfg.OutputWidth), uintptr(cfg.OutputHeight))
	} else {
		rgn, _, _ = procNativeRectRgn.Call(0, 0, uintptr(cfg.OutputWidth), uintptr(cfg.OutputHeight))
	}
	if rgn == 0 {
		log.Printf("magnifier: failed to create window region")
		return
	}
	procNativeSetWindowRgn.Call(uintptr(b.host), rgn, 1)
}

func (b *nativeBackend) Tick(cfg Config) (*frame.Frame, error) {
	if b.disposed {
		return nil, ErrBackendDisposed
	}
	if !b.initialized {
		return nil, fmt.Errorf("native backend not initialized")
	}

	screenW := int(win.GetSystemMetrics(win.SM_CXSCREEN))
	screenH := int(win.GetSystemMetrics(win.SM_CYSCREEN))
	r := region.Compute(screenW, screenH, cfg.OutputWidth, cfg.OutputHeight, cfg.ZoomLevel, cfg.XOffset, cfg.YOffset)

	rect := win.RECT{
		Left:   int32(r.Left),
		Top:    int32(r.Top),
		Right:  int32(r.Right()),
		Bottom: int32(r.Bottom()),
	}
	if ret, _, _ := procMagSetWindowSource.Call(uintptr(b.mag), uintptr(unsafe.Pointer(&rect))); ret == 0 {
		return nil, fmt.Errorf("MagSetWindowSource failed for %dx%d at (%d,%d)", r.Width, r.Height, r.Left, r.Top)
	}

	b.pump()
	return nil, nil
}

func (b *nativeBackend) pump() {
	var msg win.MSG
	for win.PeekMessage(&msg, b.host, 0, 0, win.PM_REMOVE) {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func (b *nativeBackend) SetVisible(visible bool) error {
	if b.disposed {
		return ErrBackendDisposed
	}
	if b.host == 0 {
		return fmt.Errorf("native backend has no window")
	}
	if visible {
		win.ShowWindow(b.host, win.SW_SHOWNA)
	} else {
		win.ShowWindow(b.host, win.SW_HIDE)
	}
	b.visible = visible
	return nil
}

func (b *nativeBackend) Dispose() {
	if b.mag != 0 {
		win.DestroyWindow(b.mag)
		b.mag = 0
	}
	if b.host != 0 {
		win.DestroyWindow(b.host)
		b.host = 0
	}
	if b.magInitialized {
		procMagUninitialize.Call()
		b.magInitialized = false
	}
	b.initialized = false
	b.disposed = true
}

func hostWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if msg == win.WM_ERASEBKGND {
		return 1
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}
