package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thecoder93/openclaw/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envGatewayURL   = "OPENCLAW_POPUP_GATEWAY"
	envTokenFile    = "OPENCLAW_POPUP_TOKEN_FILE"
	envSocketPath   = "OPENCLAW_POPUP_SOCKET"
	envWidth        = "OPENCLAW_POPUP_WIDTH"
	envHeight       = "OPENCLAW_POPUP_HEIGHT"
	envRefreshSecs  = "OPENCLAW_POPUP_REFRESH_SECONDS"
	envActiveHours  = "OPENCLAW_POPUP_ACTIVE_WINDOW_HOURS"
	envPager        = "OPENCLAW_POPUP_PAGER"
	envShowFooter   = "OPENCLAW_POPUP_FOOTER"
	envTrace        = "OPENCLAW_POPUP_TRACE"
	envLogFile      = "OPENCLAW_POPUP_LOG_FILE"
	envSettingsFile = "OPENCLAW_POPUP_SETTINGS"
)

// Load parses configuration from the settings file, environment variables and
// CLI arguments, in ascending precedence.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	settings := loadSettings(env[envSettingsFile])

	fs := flag.NewFlagSet("openclaw-popup", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	gatewayURL := fs.String("gateway", envOrDefault(env, envGatewayURL, settings.Gateway.URL), "base URL of the OpenClaw gateway")
	tokenFile := fs.String("token-file", envOrDefault(env, envTokenFile, settings.Gateway.TokenFile), "path to the gateway bearer token file")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	refreshSecs := fs.Int("refresh", envOrInt(env, envRefreshSecs, settings.Sessions.RefreshSeconds), "minimum seconds between unforced session refreshes")
	activeHours := fs.Int("active-window", envOrInt(env, envActiveHours, settings.Sessions.ActiveWindowHours), "hours of inactivity before a session is hidden")
	pager := fs.String("pager", envOrDefault(env, envPager, settings.Pager), "pager command used to open transcripts")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, settings.Logging.FilePath), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *refreshSecs < 0 {
		return Config{}, fmt.Errorf("refresh must be >= 0 (got %d)", *refreshSecs)
	}
	if *activeHours < 0 {
		return Config{}, fmt.Errorf("active-window must be >= 0 (got %d)", *activeHours)
	}

	cfg := Config{
		App: app.Config{
			GatewayURL:      *gatewayURL,
			TokenFile:       *tokenFile,
			SocketPath:      *socket,
			Width:           *width,
			Height:          *height,
			RefreshInterval: time.Duration(*refreshSecs) * time.Second,
			ActiveWindow:    time.Duration(*activeHours) * time.Hour,
			Pager:           *pager,
			ShowFooter:      *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"gateway":      *gatewayURL,
			"tokenFile":    *tokenFile,
			"socket":       *socket,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"refresh":      strconv.Itoa(*refreshSecs),
			"activeWindow": strconv.Itoa(*activeHours),
			"pager":        *pager,
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	// Additional validation hooks can be placed here as configuration evolves.
	return nil
}
