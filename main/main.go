package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"goscope/clipboard"
	"goscope/config"
	"goscope/gui"
	"goscope/hotkey"
	"goscope/logutil"
	"goscope/magnifier"
	"goscope/notification"
	"goscope/settings"
	"goscope/singleinstance"
	"goscope/tray"
)

// normalizeFlagDashes maps GNU-style --flag to Go's -flag
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		if strings.HasPrefix(os.Args[i], "--") {
			os.Args[i] = os.Args[i][1:]
		}
	}
}

// enableDPIAwareness attempts to set per-monitor DPI awareness on Windows so
// screen metrics and window placement are in physical pixels
func enableDPIAwareness() {
	if runtime.GOOS != "windows" {
		return
	}
	// Prefer per-monitor DPI awareness via Shcore.SetProcessDpiAwareness (Win 8.1+)
	shcore := syscall.NewLazyDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const PROCESS_PER_MONITOR_DPI_AWARE = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		_, _, _ = setProcessDpiAwareness.Call(uintptr(PROCESS_PER_MONITOR_DPI_AWARE))
		return
	}
	// Fallback: user32.SetProcessDPIAware (Vista+)
	user32 := syscall.NewLazyDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err == nil {
		_, _, _ = setProcessDPIAware.Call()
	}
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	// The engine creates and paints native windows; their message handling
	// must stay on a single OS thread.
	runtime.LockOSThread()

	debug := flag.Bool("debug", false, "Enable file logging regardless of environment")
	noNative := flag.Bool("no-native", false, "Skip the OS magnification API and use the capture backend")
	resetConfig := flag.Bool("reset-config", false, "Overwrite saved settings with defaults and continue")
	normalizeFlagDashes()
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging || *debug)

	instance, err := singleinstance.Acquire()
	if err != nil {
		fmt.Fprintln(os.Stderr, "goscope is already running")
		os.Exit(1)
	}
	defer instance.Release()

	settingsPath := cfg.SettingsPath
	if settingsPath == "" {
		settingsPath, err = settings.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve settings path: %v", err)
		}
	}

	var prefs settings.Settings
	if *resetConfig {
		prefs = settings.Default()
		if err := settings.Save(settingsPath, prefs); err != nil {
			log.Printf("Failed to reset settings: %v", err)
		}
	} else {
		prefs, err = settings.Load(settingsPath)
		if err != nil {
			log.Printf("Using default settings: %v", err)
		}
	}

	engineCfg := prefs.Config()
	if cfg.DisableNative || *noNative {
		engineCfg.PreferNative = false
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable, snapshots disabled: %v", err)
	}

	engine := magnifier.New(engineCfg)
	if err := engine.Initialize(); err != nil {
		notification.ShowBlockingError("Goscope cannot start",
			fmt.Sprintf("No magnification backend could be initialized:\n\n%v", err))
		os.Exit(1)
	}
	defer engine.Dispose()

	log.Printf("Goscope initialized")
	log.Printf("Hotkeys: toggle=%s zoom=%s snapshot=%s", cfg.ToggleHotkey, cfg.ZoomHotkey, cfg.SnapshotHotkey)
	log.Printf("Settings file: %s", settingsPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// All of these fire on foreign threads and marshal onto the engine
	// goroutine through Dispatch.
	toggleVisibility := func() {
		engine.Dispatch(func() {
			if _, err := engine.Toggle(); err != nil {
				log.Printf("Toggle failed: %v", err)
			}
		})
	}
	toggleZoom := func() {
		engine.Dispatch(func() {
			preset := engine.ToggleZoomPreset()
			log.Printf("Zoom preset: %s (%.2fx)", preset, engine.Config().ZoomLevel)
		})
	}
	snapshot := func() {
		engine.Dispatch(func() {
			data, err := engine.SnapshotPNG()
			if err != nil {
				log.Printf("Snapshot failed: %v", err)
				return
			}
			if err := clipboard.WriteImagePNG(data); err != nil {
				log.Printf("Failed to copy snapshot: %v", err)
			}
		})
	}
	openPreferences := func() {
		gui.Show(gui.Options{
			Current: func() settings.Settings {
				ch := make(chan settings.Settings, 1)
				engine.Dispatch(func() { ch <- settings.FromConfig(engine.Config()) })
				return <-ch
			},
			OnApply: func(s settings.Settings) {
				engine.Dispatch(func() { applySettings(engine, s) })
			},
			OnSave: func(s settings.Settings) error {
				return settings.Save(settingsPath, s)
			},
		})
	}

	hotkey.Listen([]hotkey.Binding{
		{Combo: cfg.ToggleHotkey, Callback: toggleVisibility},
		{Combo: cfg.ZoomHotkey, Callback: toggleZoom},
		{Combo: cfg.SnapshotHotkey, Callback: snapshot},
	})

	trayIcon := tray.New(tray.Callbacks{
		OnToggleVisibility: toggleVisibility,
		OnToggleZoom:       toggleZoom,
		OnSnapshot:         snapshot,
		OnPreferences:      openPreferences,
		OnQuit:             cancel,
	})
	go trayIcon.Run()
	defer trayIcon.Destroy()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	engine.Dispatch(func() {
		if err := engine.Show(); err != nil {
			log.Printf("Failed to show magnifier at startup: %v", err)
		}
	})

	if err := engine.Run(ctx); err != nil {
		log.Printf("Engine stopped: %v", err)
	}
}

// applySettings pushes preference values into the running engine. Runs on
// the engine goroutine.
func applySettings(e *magnifier.Engine, s settings.Settings) {
	e.SetOutputSize(s.Width, s.Height)
	e.SetCircular(s.Circular)
	e.SetRefreshRate(s.RefreshRateHz)
	e.SetZoomLevels(s.ZoomLow, s.ZoomHigh)
	e.SetOffsets(s.XOffset, s.YOffset)
}
