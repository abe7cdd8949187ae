package config

import (
	"os"
	"path/filepath"
)

// AppName names the per-user config directory.
const AppName = "kana-arcade"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultSettingsPath returns the default TOML settings path.
func DefaultSettingsPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "settings.toml")
}
