package settings

import (
	"os"
	"path/filepath"
	"testing"

	"goscope/magnifier"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() on missing file failed: %v", err)
	}
	if s != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", s, Default())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	want := Settings{
		Width:         320,
		Height:        240,
		Circular:      false,
		RefreshRateHz: 30,
		ZoomHigh:      8,
		ZoomLow:       1.5,
		XOffset:       -50,
		YOffset:       25,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "width: -10\nheight: 400\nrefresh_rate_hz: 500\nzoom_high: 99\nzoom_low: 0.2\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Width != magnifier.DefaultWidth {
		t.Errorf("Width = %d, want default %d", s.Width, magnifier.DefaultWidth)
	}
	if s.RefreshRateHz != magnifier.MaxRefreshRateHz {
		t.Errorf("RefreshRateHz = %d, want %d", s.RefreshRateHz, magnifier.MaxRefreshRateHz)
	}
	if s.ZoomHigh != magnifier.MaxZoom {
		t.Errorf("ZoomHigh = %.2f, want %.2f", s.ZoomHigh, magnifier.MaxZoom)
	}
	if s.ZoomLow != magnifier.MinZoom {
		t.Errorf("ZoomLow = %.2f, want %.2f", s.ZoomLow, magnifier.MinZoom)
	}
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err == nil {
		t.Error("expected an error for malformed settings")
	}
	if s != Default() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestConfigConversion(t *testing.T) {
	s := Default()
	cfg := s.Config()
	if cfg.ZoomLevel != s.ZoomLow {
		t.Errorf("startup zoom = %.2f, want low preset %.2f", cfg.ZoomLevel, s.ZoomLow)
	}
	if cfg.ZoomPreset != magnifier.PresetLow {
		t.Errorf("startup preset = %v, want low", cfg.ZoomPreset)
	}

	cfg.OutputWidth = 512
	cfg.ZoomLevelHigh = 6
	back := FromConfig(cfg)
	if back.Width != 512 || back.ZoomHigh != 6 {
		t.Errorf("FromConfig() = %+v, want width 512 and zoom high 6", back)
	}
}
