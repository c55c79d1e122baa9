package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings is the optional TOML settings file. Flags and environment
// variables override anything set here.
type Settings struct {
	Gateway  GatewaySettings  `toml:"gateway"`
	Sessions SessionsSettings `toml:"sessions"`
	Logging  LoggingSettings  `toml:"logging"`
	Pager    string           `toml:"pager"`
}

type GatewaySettings struct {
	URL       string `toml:"url"`
	TokenFile string `toml:"token_file"`
}

type SessionsSettings struct {
	RefreshSeconds    int `toml:"refresh_seconds"`
	ActiveWindowHours int `toml:"active_window_hours"`
}

type LoggingSettings struct {
	FilePath string `toml:"file"`
}

// DefaultSettingsPath returns the conventional settings location.
func DefaultSettingsPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "openclaw", "popup.toml")
}

// loadSettings reads the settings file at path, falling back to the default
// location when path is empty. A missing or malformed file yields zero-value
// settings; configuration must never prevent the popup from starting.
func loadSettings(path string) Settings {
	if path == "" {
		path = DefaultSettingsPath()
	}
	var s Settings
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}
	}
	return s
}
