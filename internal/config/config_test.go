package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "popup.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs failed: %v", err)
	}
	if cfg.App.GatewayURL != "" {
		t.Fatalf("unexpected gateway default %q", cfg.App.GatewayURL)
	}
	if cfg.App.RefreshInterval != 0 {
		t.Fatalf("unexpected refresh default %v", cfg.App.RefreshInterval)
	}
	if cfg.Logging.Trace {
		t.Fatal("trace should default off")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs(
		[]string{"-gateway", "http://flag:1", "-refresh", "30"},
		[]string{"OPENCLAW_POPUP_GATEWAY=http://env:2", "OPENCLAW_POPUP_REFRESH_SECONDS=5"},
	)
	if err != nil {
		t.Fatalf("LoadArgs failed: %v", err)
	}
	if cfg.App.GatewayURL != "http://flag:1" {
		t.Fatalf("flag should win: %q", cfg.App.GatewayURL)
	}
	if cfg.App.RefreshInterval != 30*time.Second {
		t.Fatalf("flag refresh should win: %v", cfg.App.RefreshInterval)
	}
}

func TestEnvironmentOverridesSettingsFile(t *testing.T) {
	path := writeSettings(t, `
pager = "bat"

[gateway]
url = "http://file:3"
token_file = "/from/file/token"

[sessions]
refresh_seconds = 7
active_window_hours = 12
`)
	cfg, err := LoadArgs(nil, []string{
		"OPENCLAW_POPUP_SETTINGS=" + path,
		"OPENCLAW_POPUP_GATEWAY=http://env:2",
	})
	if err != nil {
		t.Fatalf("LoadArgs failed: %v", err)
	}
	if cfg.App.GatewayURL != "http://env:2" {
		t.Fatalf("env should override file: %q", cfg.App.GatewayURL)
	}
	if cfg.App.TokenFile != "/from/file/token" {
		t.Fatalf("file token not applied: %q", cfg.App.TokenFile)
	}
	if cfg.App.RefreshInterval != 7*time.Second {
		t.Fatalf("file refresh not applied: %v", cfg.App.RefreshInterval)
	}
	if cfg.App.ActiveWindow != 12*time.Hour {
		t.Fatalf("file active window not applied: %v", cfg.App.ActiveWindow)
	}
	if cfg.App.Pager != "bat" {
		t.Fatalf("file pager not applied: %q", cfg.App.Pager)
	}
}

func TestMalformedSettingsFileIsIgnored(t *testing.T) {
	path := writeSettings(t, "not [valid toml")
	cfg, err := LoadArgs(nil, []string{"OPENCLAW_POPUP_SETTINGS=" + path})
	if err != nil {
		t.Fatalf("LoadArgs failed: %v", err)
	}
	if cfg.App.GatewayURL != "" {
		t.Fatalf("malformed settings leaked values: %+v", cfg.App)
	}
}

func TestNegativeValuesRejected(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-height", "-2"},
		{"-refresh", "-3"},
		{"-active-window", "-4"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestFlagsMapMirrorsValues(t *testing.T) {
	cfg, err := LoadArgs([]string{"-trace", "-footer"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs failed: %v", err)
	}
	if cfg.Flags["trace"] != "true" || cfg.Flags["footer"] != "true" {
		t.Fatalf("unexpected flags map %v", cfg.Flags)
	}
	if !cfg.Logging.Trace {
		t.Fatal("trace flag not applied")
	}
}
