//go:build windows

package overlay

import (
	"fmt"
	"log"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

const (
	guideClassName = "GoscopeAlignGuide"
	lwaColorKey    = 0x00000001
	crosshairSize  = 10
)

var (
	procCreatePen = gdi32.NewProc("CreatePen")
	procRectangle = gdi32.NewProc("Rectangle")
	procEllipse   = gdi32.NewProc("Ellipse")
	procMoveToEx  = gdi32.NewProc("MoveToEx")
	procLineTo    = gdi32.NewProc("LineTo")
	procFillRect  = user32.NewProc("FillRect")
)

var (
	guideClassRegistered bool
	activeGuide          *platformGuide
)

type platformGuide struct {
	hwnd    win.HWND
	cfg     GuideConfig
	visible bool
}

func newPlatformGuide() Guide { return &platformGuide{} }

func (g *platformGuide) Show(cfg GuideConfig) error {
	g.cfg = cfg
	if g.hwnd == 0 {
		if err := g.create(); err != nil {
			return err
		}
	}
	win.ShowWindow(g.hwnd, win.SW_SHOWNA)
	g.visible = true
	g.redraw()
	return nil
}

func (g *platformGuide) Update(cfg GuideConfig) error {
	g.cfg = cfg
	if g.visible {
		g.redraw()
	}
	return nil
}

func (g *platformGuide) Hide() {
	if g.hwnd != 0 && g.visible {
		win.ShowWindow(g.hwnd, win.SW_HIDE)
	}
	g.visible = false
}

func (g *platformGuide) Destroy() {
	if g.hwnd != 0 {
		win.DestroyWindow(g.hwnd)
		g.hwnd = 0
	}
	if activeGuide == g {
		activeGuide = nil
	}
	g.visible = false
}

func (g *platformGuide) create() error {
	if !guideClassRegistered {
		wndClass := win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			LpfnWndProc:   syscall.NewCallback(guideWndProc),
			HInstance:     win.GetModuleHandle(nil),
			HbrBackground: 0,
			LpszClassName: syscall.StringToUTF16Ptr(guideClassName),
		}
		if win.RegisterClassEx(&wndClass) == 0 {
			return fmt.Errorf("failed to register alignment guide class")
		}
		guideClassRegistered = true
	}

	screenW := win.GetSystemMetrics(win.SM_CXSCREEN)
	screenH := win.GetSystemMetrics(win.SM_CYSCREEN)
	hwnd := win.CreateWindowEx(
		win.WS_EX_TOPMOST|win.WS_EX_LAYERED|win.WS_EX_TRANSPARENT|win.WS_EX_TOOLWINDOW|wsExNoActivate,
		syscall.StringToUTF16Ptr(guideClassName),
		syscall.StringToUTF16Ptr("goscope alignment"),
		win.WS_POPUP,
		0, 0, screenW, screenH,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if hwnd == 0 {
		return fmt.Errorf("failed to create alignment guide window")
	}
	// Black is the transparency key, only the red outline is visible.
	procSetLayeredWindowAttrs.Call(uintptr(hwnd), 0, 0, lwaColorKey)
	g.hwnd = hwnd
	activeGuide = g
	return nil
}

func (g *platformGuide) redraw() {
	if g.hwnd == 0 {
		return
	}
	win.InvalidateRect(g.hwnd, nil, true)
	win.UpdateWindow(g.hwnd)
}

func guideWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		if activeGuide != nil {
			activeGuide.paint(hdc)
		}
		win.EndPaint(hwnd, &ps)
		return 0
	case win.WM_ERASEBKGND:
		return 1
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (g *platformGuide) paint(hdc win.HDC) {
	screenW := win.GetSystemMetrics(win.SM_CXSCREEN)
	screenH := win.GetSystemMetrics(win.SM_CYSCREEN)

	// Clear to the color key so everything but the outline stays see-through.
	bg := win.RECT{Left: 0, Top: 0, Right: screenW, Bottom: screenH}
	procFillRect.Call(uintptr(hdc), uintptr(unsafe.Pointer(&bg)), uintptr(win.GetStockObject(win.BLACK_BRUSH)))

	redPen, _, _ := procCreatePen.Call(0, 2, 0x0000FF)
	if redPen == 0 {
		log.Printf("overlay: failed to create guide pen")
		return
	}
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(redPen))
	oldBrush := win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))

	centerX := int(screenW)/2 + g.cfg.XOffset
	centerY := int(screenH)/2 + g.cfg.YOffset
	left := centerX - g.cfg.Width/2
	top := centerY - g.cfg.Height/2
	right := left + g.cfg.Width
	bottom := top + g.cfg.Height

	if g.cfg.Circular {
		procEllipse.Call(uintptr(hdc), uintptr(left), uintptr(top), uintptr(right), uintptr(bottom))
	} else {
		procRectangle.Call(uintptr(hdc), uintptr(left), uintptr(top), uintptr(right), uintptr(bottom))
	}

	procMoveToEx.Call(uintptr(hdc), uintptr(centerX-crosshairSize), uintptr(centerY), 0)
	procLineTo.Call(uintptr(hdc), uintptr(centerX+crosshairSize), uintptr(centerY))
	procMoveToEx.Call(uintptr(hdc), uintptr(centerX), uintptr(centerY-crosshairSize), 0)
	procLineTo.Call(uintptr(hdc), uintptr(centerX), uintptr(centerY+crosshairSize))

	win.SelectObject(hdc, oldPen)
	win.SelectObject(hdc, oldBrush)
	win.DeleteObject(win.HGDIOBJ(redPen))
}
