// Package tmux opens session transcripts inside the surrounding tmux server.
// The popup itself runs inside a tmux popup; inspecting a log spawns a new
// window running the user's pager so the popup can close immediately.
package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type tmuxClient interface {
	DisplayMessage(target, format string) (string, error)
	Close() error
}

type commander interface {
	Run() error
}

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return exec.Command(name, args...)
	}
)

// ResolveSocketPath determines the tmux socket to target: explicit flag
// value, then environment, then the conventional per-user default.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("OPENCLAW_POPUP_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// Opener spawns pager windows for session transcripts.
type Opener struct {
	socketPath string
	pager      string
}

// NewOpener builds a log opener bound to the given tmux socket. An empty
// pager falls back to $PAGER, then less.
func NewOpener(socketPath, pager string) *Opener {
	if pager == "" {
		pager = os.Getenv("PAGER")
	}
	if pager == "" {
		pager = "less"
	}
	return &Opener{socketPath: socketPath, pager: pager}
}

// OpenLog opens the transcript for sessionID in a new tmux window running the
// pager. The transcript lives next to the session store, named by session id.
func (o *Opener) OpenLog(sessionID, storePath string) error {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return fmt.Errorf("session id required")
	}
	logPath := TranscriptPath(id, storePath)
	if _, err := os.Stat(logPath); err != nil {
		return fmt.Errorf("transcript not readable: %w", err)
	}
	// Confirm the server is reachable before spawning so the failure is
	// attributable; a dead server makes new-window exit non-zero with no
	// useful message.
	client, err := newTmux(o.socketPath)
	if err != nil {
		return fmt.Errorf("tmux unavailable: %w", err)
	}
	if _, err := client.DisplayMessage("", "#{client_name}"); err != nil {
		_ = client.Close()
		return fmt.Errorf("tmux unavailable: %w", err)
	}
	_ = client.Close()

	args := baseArgs(o.socketPath)
	args = append(args, "new-window", "-n", fmt.Sprintf("log:%s", id), fmt.Sprintf("%s %q", o.pager, logPath))
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("open log window: %w", err)
	}
	return nil
}

// TranscriptPath maps a session id and store locator to the transcript file.
func TranscriptPath(sessionID, storePath string) string {
	dir := filepath.Dir(storePath)
	return filepath.Join(dir, sessionID+".jsonl")
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}
