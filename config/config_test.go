package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOSCOPE_FILE_LOGGING", "")
	t.Setenv("GOSCOPE_NO_NATIVE", "")
	t.Setenv("GOSCOPE_HOTKEY_TOGGLE", "")
	t.Setenv("GOSCOPE_HOTKEY_ZOOM", "")
	t.Setenv("GOSCOPE_HOTKEY_SNAPSHOT", "")
	t.Setenv(SettingsPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.EnableFileLogging {
		t.Error("expected file logging disabled by default")
	}
	if cfg.DisableNative {
		t.Error("expected native backend enabled by default")
	}
	if cfg.ToggleHotkey != DefaultToggleHotkey {
		t.Errorf("ToggleHotkey = %q, want %q", cfg.ToggleHotkey, DefaultToggleHotkey)
	}
	if cfg.ZoomHotkey != DefaultZoomHotkey {
		t.Errorf("ZoomHotkey = %q, want %q", cfg.ZoomHotkey, DefaultZoomHotkey)
	}
	if cfg.SnapshotHotkey != DefaultSnapshotHotkey {
		t.Errorf("SnapshotHotkey = %q, want %q", cfg.SnapshotHotkey, DefaultSnapshotHotkey)
	}
	if cfg.SettingsPath != "" {
		t.Errorf("SettingsPath = %q, want empty", cfg.SettingsPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GOSCOPE_FILE_LOGGING", "TRUE")
	t.Setenv("GOSCOPE_NO_NATIVE", "true")
	t.Setenv("GOSCOPE_HOTKEY_TOGGLE", "Ctrl+Shift+F1")
	t.Setenv(SettingsPathEnvVar, "/tmp/goscope-test.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.EnableFileLogging {
		t.Error("expected file logging enabled")
	}
	if !cfg.DisableNative {
		t.Error("expected native backend disabled")
	}
	if cfg.ToggleHotkey != "Ctrl+Shift+F1" {
		t.Errorf("ToggleHotkey = %q, want override", cfg.ToggleHotkey)
	}
	if cfg.SettingsPath != "/tmp/goscope-test.yaml" {
		t.Errorf("SettingsPath = %q, want override", cfg.SettingsPath)
	}
}
