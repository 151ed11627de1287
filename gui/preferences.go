// Package gui implements the preferences window where lens size, refresh
// rate, zoom presets and offsets are tuned. The fyne event loop runs on its
// own locked OS thread, started lazily on first use.
package gui

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"goscope/magnifier"
	"goscope/overlay"
	"goscope/settings"
)

// Options connect the preferences window to the rest of the application.
// Current supplies a snapshot to populate the widgets; OnApply pushes values
// to the running engine; OnSave persists them. Both callbacks fire on the
// UI goroutine.
type Options struct {
	Current func() settings.Settings
	OnApply func(settings.Settings)
	OnSave  func(settings.Settings) error
}

var (
	mu      sync.Mutex
	fyneApp fyne.App
)

// Show opens the preferences window, starting the UI loop on first use.
// Safe to call from any goroutine.
func Show(opts Options) {
	mu.Lock()
	if fyneApp == nil {
		ready := make(chan fyne.App, 1)
		go func() {
			runtime.LockOSThread()
			a := app.NewWithID("io.goscope.app")
			ready <- a
			a.Run()
		}()
		fyneApp = <-ready
	}
	a := fyneApp
	mu.Unlock()

	fyne.Do(func() { buildWindow(a, opts) })
}

func buildWindow(a fyne.App, opts Options) {
	window := a.NewWindow("Goscope Preferences")
	window.Resize(fyne.NewSize(400, 560))

	current := settings.Default()
	if opts.Current != nil {
		current = opts.Current()
	}
	guide := overlay.NewGuide()

	// --- Lens ---
	lensLabel := widget.NewLabel("Lens")
	lensLabel.TextStyle = fyne.TextStyle{Bold: true}

	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.Itoa(current.Width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.Itoa(current.Height))
	circularCheck := widget.NewCheck("Circular lens", nil)
	circularCheck.SetChecked(current.Circular)

	lensSection := container.NewVBox(
		lensLabel,
		container.NewGridWithColumns(4,
			widget.NewLabel("Width"), widthEntry,
			widget.NewLabel("Height"), heightEntry,
		),
		circularCheck,
	)

	// --- Refresh ---
	refreshLabel := widget.NewLabel("Refresh")
	refreshLabel.TextStyle = fyne.TextStyle{Bold: true}

	refreshBinding := binding.NewFloat()
	refreshBinding.Set(float64(current.RefreshRateHz))
	refreshSlider := widget.NewSliderWithData(magnifier.MinRefreshRateHz, magnifier.MaxRefreshRateHz, refreshBinding)
	refreshSlider.Step = 1
	refreshValueLabel := widget.NewLabel(fmt.Sprintf("%d Hz", current.RefreshRateHz))
	refreshBinding.AddListener(binding.NewDataListener(func() {
		v, _ := refreshBinding.Get()
		refreshValueLabel.SetText(fmt.Sprintf("%.0f Hz", v))
	}))

	refreshSection := container.NewVBox(
		refreshLabel,
		container.NewHBox(widget.NewLabel("Rate"), layout.NewSpacer(), refreshValueLabel),
		refreshSlider,
	)

	// --- Zoom ---
	zoomLabel := widget.NewLabel("Zoom")
	zoomLabel.TextStyle = fyne.TextStyle{Bold: true}

	zoomLowBinding := binding.NewFloat()
	zoomLowBinding.Set(current.ZoomLow)
	zoomLowSlider := widget.NewSliderWithData(magnifier.MinZoom, magnifier.MaxZoom, zoomLowBinding)
	zoomLowSlider.Step = 0.1
	zoomLowValueLabel := widget.NewLabel(fmt.Sprintf("%.1fx", current.ZoomLow))
	zoomLowBinding.AddListener(binding.NewDataListener(func() {
		v, _ := zoomLowBinding.Get()
		zoomLowValueLabel.SetText(fmt.Sprintf("%.1fx", v))
	}))

	zoomHighBinding := binding.NewFloat()
	zoomHighBinding.Set(current.ZoomHigh)
	zoomHighSlider := widget.NewSliderWithData(magnifier.MinZoom, magnifier.MaxZoom, zoomHighBinding)
	zoomHighSlider.Step = 0.1
	zoomHighValueLabel := widget.NewLabel(fmt.Sprintf("%.1fx", current.ZoomHigh))
	zoomHighBinding.AddListener(binding.NewDataListener(func() {
		v, _ := zoomHighBinding.Get()
		zoomHighValueLabel.SetText(fmt.Sprintf("%.1fx", v))
	}))

	zoomSection := container.NewVBox(
		zoomLabel,
		container.NewHBox(widget.NewLabel("Low preset"), layout.NewSpacer(), zoomLowValueLabel),
		zoomLowSlider,
		container.NewHBox(widget.NewLabel("High preset"), layout.NewSpacer(), zoomHighValueLabel),
		zoomHighSlider,
	)

	// --- Position ---
	posLabel := widget.NewLabel("Position")
	posLabel.TextStyle = fyne.TextStyle{Bold: true}

	xOffsetEntry := widget.NewEntry()
	xOffsetEntry.SetText(strconv.Itoa(current.XOffset))
	yOffsetEntry := widget.NewEntry()
	yOffsetEntry.SetText(strconv.Itoa(current.YOffset))

	guideConfig := func() overlay.GuideConfig {
		w, _ := strconv.Atoi(widthEntry.Text)
		h, _ := strconv.Atoi(heightEntry.Text)
		x, _ := strconv.Atoi(xOffsetEntry.Text)
		y, _ := strconv.Atoi(yOffsetEntry.Text)
		return overlay.GuideConfig{Width: w, Height: h, XOffset: x, YOffset: y, Circular: circularCheck.Checked}
	}

	guideCheck := widget.NewCheck("Show alignment guide", func(checked bool) {
		if checked {
			if err := guide.Show(guideConfig()); err != nil {
				dialog.ShowError(err, window)
			}
		} else {
			guide.Hide()
		}
	})
	refreshGuide := func(string) {
		if guideCheck.Checked {
			guide.Update(guideConfig())
		}
	}
	xOffsetEntry.OnChanged = refreshGuide
	yOffsetEntry.OnChanged = refreshGuide
	widthEntry.OnChanged = refreshGuide
	heightEntry.OnChanged = refreshGuide

	posSection := container.NewVBox(
		posLabel,
		container.NewGridWithColumns(4,
			widget.NewLabel("X offset"), xOffsetEntry,
			widget.NewLabel("Y offset"), yOffsetEntry,
		),
		guideCheck,
	)

	collect := func() (settings.Settings, error) {
		w, err := strconv.Atoi(widthEntry.Text)
		if err != nil || w <= 0 {
			return settings.Settings{}, fmt.Errorf("width must be a positive number")
		}
		h, err := strconv.Atoi(heightEntry.Text)
		if err != nil || h <= 0 {
			return settings.Settings{}, fmt.Errorf("height must be a positive number")
		}
		x, err := strconv.Atoi(xOffsetEntry.Text)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("x offset must be a number")
		}
		y, err := strconv.Atoi(yOffsetEntry.Text)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("y offset must be a number")
		}
		rate, _ := refreshBinding.Get()
		low, _ := zoomLowBinding.Get()
		high, _ := zoomHighBinding.Get()
		return settings.Settings{
			Width:         w,
			Height:        h,
			Circular:      circularCheck.Checked,
			RefreshRateHz: int(rate),
			ZoomHigh:      high,
			ZoomLow:       low,
			XOffset:       x,
			YOffset:       y,
		}, nil
	}

	// --- Buttons ---
	applyBtn := widget.NewButton("Apply", func() {
		s, err := collect()
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		if opts.OnApply != nil {
			opts.OnApply(s)
		}
	})

	saveBtn := widget.NewButton("Save", func() {
		s, err := collect()
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		if opts.OnApply != nil {
			opts.OnApply(s)
		}
		if opts.OnSave != nil {
			if err := opts.OnSave(s); err != nil {
				dialog.ShowError(err, window)
				return
			}
		}
		dialog.ShowInformation("Saved", "Preferences saved", window)
	})
	saveBtn.Importance = widget.HighImportance

	defaultsBtn := widget.NewButton("Defaults", func() {
		d := settings.Default()
		widthEntry.SetText(strconv.Itoa(d.Width))
		heightEntry.SetText(strconv.Itoa(d.Height))
		circularCheck.SetChecked(d.Circular)
		refreshBinding.Set(float64(d.RefreshRateHz))
		zoomLowBinding.Set(d.ZoomLow)
		zoomHighBinding.Set(d.ZoomHigh)
		xOffsetEntry.SetText(strconv.Itoa(d.XOffset))
		yOffsetEntry.SetText(strconv.Itoa(d.YOffset))
	})

	closeBtn := widget.NewButton("Close", func() {
		window.Close()
	})

	buttons := container.NewHBox(layout.NewSpacer(), applyBtn, saveBtn, defaultsBtn, closeBtn, layout.NewSpacer())

	content := container.NewVBox(
		lensSection,
		widget.NewSeparator(),
		refreshSection,
		widget.NewSeparator(),
		zoomSection,
		widget.NewSeparator(),
		posSection,
		widget.NewSeparator(),
		buttons,
	)

	window.SetOnClosed(func() {
		guide.Destroy()
	})
	window.SetContent(container.NewPadded(content))
	window.Show()
}
