// Package settings persists user preferences as YAML. Anything outside the
// valid ranges in a hand-edited file is clamped on load rather than rejected.
package settings

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"goscope/magnifier"
)

const (
	appDirName   = "goscope"
	settingsFile = "settings.yaml"
)

// Settings are the persisted magnifier preferences.
type Settings struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Circular      bool    `yaml:"circular"`
	RefreshRateHz int     `yaml:"refresh_rate_hz"`
	ZoomHigh      float64 `yaml:"zoom_high"`
	ZoomLow       float64 `yaml:"zoom_low"`
	XOffset       int     `yaml:"x_offset"`
	YOffset       int     `yaml:"y_offset"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	return Settings{
		Width:         magnifier.DefaultWidth,
		Height:        magnifier.DefaultHeight,
		Circular:      true,
		RefreshRateHz: magnifier.DefaultRefreshRateHz,
		ZoomHigh:      magnifier.DefaultZoomHigh,
		ZoomLow:       magnifier.DefaultZoomLow,
	}
}

// DefaultPath returns the per-user settings location, e.g.
// ~/.config/goscope/settings.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user config dir: %v", err)
	}
	return filepath.Join(dir, appDirName, settingsFile), nil
}

// Load reads settings from path. A missing file yields the defaults with no
// error; an unreadable or malformed file yields the defaults plus the error
// so the caller can warn and keep going.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("cannot read settings file %s: %v", path, err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("malformed settings file %s: %v", path, err)
	}
	s.normalize()
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	s.normalize()
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode settings: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create settings dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write settings file %s: %v", path, err)
	}
	log.Printf("Saved settings to %s", path)
	return nil
}

// Config converts the persisted preferences into an engine configuration.
// The low zoom preset is active on startup.
func (s Settings) Config() magnifier.Config {
	cfg := magnifier.Config{
		OutputWidth:   s.Width,
		OutputHeight:  s.Height,
		Circular:      s.Circular,
		RefreshRateHz: s.RefreshRateHz,
		ZoomLevel:     s.ZoomLow,
		ZoomLevelHigh: s.ZoomHigh,
		ZoomLevelLow:  s.ZoomLow,
		ZoomPreset:    magnifier.PresetLow,
		XOffset:       s.XOffset,
		YOffset:       s.YOffset,
		PreferNative:  true,
	}
	cfg.Normalize()
	return cfg
}

// FromConfig captures the persistable parts of an engine configuration.
func FromConfig(cfg magnifier.Config) Settings {
	s := Settings{
		Width:         cfg.OutputWidth,
		Height:        cfg.OutputHeight,
		Circular:      cfg.Circular,
		RefreshRateHz: cfg.RefreshRateHz,
		ZoomHigh:      cfg.ZoomLevelHigh,
		ZoomLow:       cfg.ZoomLevelLow,
		XOffset:       cfg.XOffset,
		YOffset:       cfg.YOffset,
	}
	s.normalize()
	return s
}

func (s *Settings) normalize() {
	cfg := s.Config()
	s.Width = cfg.OutputWidth
	s.Height = cfg.OutputHeight
	s.RefreshRateHz = cfg.RefreshRateHz
	s.ZoomHigh = cfg.ZoomLevelHigh
	s.ZoomLow = cfg.ZoomLevelLow
}
