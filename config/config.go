package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvFileEnvVar points at an alternate .env file when none sits next to
	// the executable.
	EnvFileEnvVar = "GOSCOPE_ENV"
	// SettingsPathEnvVar overrides where persisted preferences are stored.
	SettingsPathEnvVar = "GOSCOPE_SETTINGS"

	DefaultToggleHotkey   = "Ctrl+Alt+M"
	DefaultZoomHotkey     = "Ctrl+Alt+Z"
	DefaultSnapshotHotkey = "Ctrl+Alt+S"
)

// Config holds process-level options resolved from the environment. User
// preferences that survive restarts live in the settings package instead.
type Config struct {
	EnableFileLogging bool
	DisableNative     bool
	ToggleHotkey      string
	ZoomHotkey        string
	SnapshotHotkey    string
	SettingsPath      string
}

// Load resolves configuration from sources in priority order:
// 1) .env in the application (executable) directory
// 2) If not found, GOSCOPE_ENV as a path to an env file
// 3) The process environment itself
func Load() (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		EnableFileLogging: strings.ToLower(os.Getenv("GOSCOPE_FILE_LOGGING")) == "true",
		DisableNative:     strings.ToLower(os.Getenv("GOSCOPE_NO_NATIVE")) == "true",
		ToggleHotkey:      getEnvWithDefault("GOSCOPE_HOTKEY_TOGGLE", DefaultToggleHotkey),
		ZoomHotkey:        getEnvWithDefault("GOSCOPE_HOTKEY_ZOOM", DefaultZoomHotkey),
		SnapshotHotkey:    getEnvWithDefault("GOSCOPE_HOTKEY_SNAPSHOT", DefaultSnapshotHotkey),
		SettingsPath:      strings.TrimSpace(os.Getenv(SettingsPathEnvVar)),
	}
	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
