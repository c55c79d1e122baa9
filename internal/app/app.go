package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thecoder93/openclaw/internal/actions"
	"github.com/thecoder93/openclaw/internal/controller"
	"github.com/thecoder93/openclaw/internal/gateway"
	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/thecoder93/openclaw/internal/tmux"
	"github.com/thecoder93/openclaw/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// healthProbeInterval is how often gateway connectivity is re-checked while
// the popup is running.
const healthProbeInterval = 5 * time.Second

// Config describes user-provided application options.
type Config struct {
	GatewayURL      string
	TokenFile       string
	SocketPath      string
	Width           int
	Height          int
	RefreshInterval time.Duration
	ActiveWindow    time.Duration
	Pager           string
	ShowFooter      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	token, err := readToken(cfg.TokenFile)
	if err != nil {
		return fmt.Errorf("read gateway token: %w", err)
	}
	client := gateway.New(cfg.GatewayURL, token)
	monitor := gateway.NewMonitor(client, healthProbeInterval)
	defer monitor.Stop()

	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	opener := tmux.NewOpener(socketPath, cfg.Pager)

	bridge := ui.NewBridge()
	cache := controller.NewCache(client, monitor, cfg.RefreshInterval)
	lifecycle := controller.NewLifecycle(cache, monitor, cfg.ActiveWindow, func(p plan.Plan) {
		bridge.Send(ui.PlanMsg{Plan: p})
	})
	dispatcher := actions.NewDispatcher(client, opener, bridge, bridge, lifecycle)

	model := ui.NewModel(cfg.Width, cfg.Height, cfg.ShowFooter, lifecycle, dispatcher, monitor)
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge.Bind(program.Send)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// readToken loads the bearer token for gateway requests. An empty path means
// the gateway runs without authentication.
func readToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
