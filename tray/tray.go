// Package tray provides the system tray icon and menu. Menu callbacks fire
// on the systray goroutine; engine work must go through Engine.Dispatch.
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

// Callbacks connect menu items to application actions. Nil entries are
// simply not invoked.
type Callbacks struct {
	OnToggleVisibility func()
	OnToggleZoom       func()
	OnSnapshot         func()
	OnPreferences      func()
	OnQuit             func()
}

type Tray struct {
	cb Callbacks
}

func New(cb Callbacks) *Tray {
	return &Tray{cb: cb}
}

// Run blocks inside the systray loop; call it from a dedicated goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Destroy tears the tray icon down.
func (t *Tray) Destroy() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes())
	systray.SetTitle("Goscope")
	systray.SetTooltip("Goscope screen magnifier")

	mToggle := systray.AddMenuItem("Show/Hide Magnifier", "Toggle the magnifier overlay")
	mZoom := systray.AddMenuItem("Toggle Zoom Preset", "Switch between the low and high zoom levels")
	mSnapshot := systray.AddMenuItem("Copy Snapshot", "Copy the magnified view to the clipboard as an image")
	systray.AddSeparator()
	mPrefs := systray.AddMenuItem("Preferences...", "Open the preferences window")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit goscope")

	go func() {
		for {
			select {
			case <-mToggle.ClickedCh:
				call(t.cb.OnToggleVisibility)
			case <-mZoom.ClickedCh:
				call(t.cb.OnToggleZoom)
			case <-mSnapshot.ClickedCh:
				call(t.cb.OnSnapshot)
			case <-mPrefs.ClickedCh:
				call(t.cb.OnPreferences)
			case <-mQuit.ClickedCh:
				call(t.cb.OnQuit)
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	log.Printf("Tray icon exited")
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
