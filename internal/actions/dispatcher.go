// Package actions wraps each user-invoked session command with confirmation,
// execution, and post-execution cache invalidation or error reporting.
package actions

import (
	"context"
	"fmt"

	"github.com/thecoder93/openclaw/internal/logging/events"
	"github.com/thecoder93/openclaw/internal/session"
)

// CompactMaxLines is the transcript line budget kept by the compact command;
// the remainder is archived on the gateway.
const CompactMaxLines = 400

// Executor performs remote mutations against a single session.
type Executor interface {
	Patch(ctx context.Context, key, field string, value *string) error
	Reset(ctx context.Context, key string) error
	Compact(ctx context.Context, key string, maxLines int) error
	Delete(ctx context.Context, key string) error
}

// LogOpener opens a session transcript for read-only inspection.
type LogOpener interface {
	OpenLog(sessionID, storePath string) error
}

// Confirmer is a synchronous yes/no decision gated on a human response.
type Confirmer interface {
	Confirm(title, message, actionLabel string) bool
}

// Reporter receives action failures. Fire-and-forget.
type Reporter interface {
	ReportError(title string, err error)
}

// Refresher forces a cache invalidation after a successful mutation.
type Refresher interface {
	RefreshNow()
}

// Dispatcher runs the confirm → execute → refresh-or-report template for the
// six session commands. Execution failures never propagate past it.
type Dispatcher struct {
	executor Executor
	logs     LogOpener
	confirm  Confirmer
	report   Reporter
	refresh  Refresher
}

func NewDispatcher(executor Executor, logs LogOpener, confirm Confirmer, report Reporter, refresh Refresher) *Dispatcher {
	return &Dispatcher{
		executor: executor,
		logs:     logs,
		confirm:  confirm,
		report:   report,
		refresh:  refresh,
	}
}

// PatchThinking sets the session's thinking level; a nil level clears the
// override.
func (d *Dispatcher) PatchThinking(ctx context.Context, key string, level *session.ThinkingLevel) {
	events.Action.Invoke("patch-thinking", key)
	var value *string
	if level != nil {
		s := string(*level)
		value = &s
	}
	d.run(ctx, "Thinking update failed", "patch-thinking", key, func() error {
		return d.executor.Patch(ctx, key, "thinkingLevel", value)
	})
}

// PatchVerbose sets the session's verbose level; a nil level clears the
// override.
func (d *Dispatcher) PatchVerbose(ctx context.Context, key string, level *session.VerboseLevel) {
	events.Action.Invoke("patch-verbose", key)
	var value *string
	if level != nil {
		s := string(*level)
		value = &s
	}
	d.run(ctx, "Verbose update failed", "patch-verbose", key, func() error {
		return d.executor.Patch(ctx, key, "verboseLevel", value)
	})
}

// ResetSession issues a fresh session id for the key after confirmation.
func (d *Dispatcher) ResetSession(ctx context.Context, key string) {
	events.Action.Invoke("reset", key)
	title := "Reset session"
	message := fmt.Sprintf("Start a fresh session id for %q? The current conversation context is discarded.", key)
	if !d.confirm.Confirm(title, message, "Reset") {
		events.Action.Declined("reset", key)
		return
	}
	d.run(ctx, "Reset failed", "reset", key, func() error {
		return d.executor.Reset(ctx, key)
	})
}

// CompactSession truncates the transcript to the line budget after
// confirmation, archiving the remainder.
func (d *Dispatcher) CompactSession(ctx context.Context, key string) {
	events.Action.Invoke("compact", key)
	title := "Compact session"
	message := fmt.Sprintf("Trim %q to the last %d transcript lines? Older lines are archived.", key, CompactMaxLines)
	if !d.confirm.Confirm(title, message, "Compact") {
		events.Action.Declined("compact", key)
		return
	}
	d.run(ctx, "Compact failed", "compact", key, func() error {
		return d.executor.Compact(ctx, key, CompactMaxLines)
	})
}

// DeleteSession removes the session entry after confirmation. The home
// session is refused outright; the plan never offers it delete either.
func (d *Dispatcher) DeleteSession(ctx context.Context, key string) {
	events.Action.Invoke("delete", key)
	if key == session.MainKey {
		d.report.ReportError("Delete failed", fmt.Errorf("the %q session cannot be deleted", session.MainKey))
		return
	}
	title := "Delete session"
	message := fmt.Sprintf("Remove %q and archive its transcript?", key)
	if !d.confirm.Confirm(title, message, "Delete") {
		events.Action.Declined("delete", key)
		return
	}
	d.run(ctx, "Delete failed", "delete", key, func() error {
		return d.executor.Delete(ctx, key)
	})
}

// OpenSessionLog opens the transcript for inspection. Read-only: no
// confirmation and no forced refresh afterward.
func (d *Dispatcher) OpenSessionLog(sessionID, storePath string) {
	events.Action.Invoke("open-log", sessionID)
	if err := d.logs.OpenLog(sessionID, storePath); err != nil {
		events.Action.Error("open-log", err)
		d.report.ReportError("Open log failed", err)
		return
	}
	events.Action.Success("open-log", sessionID)
}

// run executes a mutation and applies the shared success/failure policy:
// failure short-circuits before the refresh, so the cache is never left
// half-updated.
func (d *Dispatcher) run(ctx context.Context, failTitle, op, key string, execute func() error) {
	if err := execute(); err != nil {
		events.Action.Error(op, err)
		d.report.ReportError(failTitle, err)
		return
	}
	events.Action.Success(op, key)
	d.refresh.RefreshNow()
}
