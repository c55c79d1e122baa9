// Package plan computes the render-agnostic description of what the sessions
// popup should display. Build is a pure function of cache and connection
// state; the rendering layer consumes the resulting entries verbatim.
package plan

import (
	"sort"
	"time"

	"github.com/thecoder93/openclaw/internal/gateway"
	"github.com/thecoder93/openclaw/internal/session"
)

// DefaultActiveWindow is the recency threshold beyond which a non-pinned
// session row is excluded from display.
const DefaultActiveWindow = 24 * time.Hour

const (
	connectionMessage = "No connection to gateway"
	loadingStatus     = "Loading sessions…"
	emptyMessage      = "No active sessions"
)

// ActionID names a user-invokable command attached to a session entry.
type ActionID string

const (
	ActionPatchThinking ActionID = "patch-thinking"
	ActionPatchVerbose  ActionID = "patch-verbose"
	ActionReset         ActionID = "reset"
	ActionCompact       ActionID = "compact"
	ActionDelete        ActionID = "delete"
	ActionOpenLog       ActionID = "open-log"
)

// Kind discriminates plan entries.
type Kind int

const (
	KindConnectionMessage Kind = iota
	KindLoadingHeader
	KindEmptyMessage
	KindHeader
	KindSession
)

// Entry is one typed row of the presentation plan. Status carries the message
// text for connection/loading/empty entries, Count the session total for
// header entries, and Row/Actions the payload for session entries.
type Entry struct {
	Kind    Kind
	Status  string
	Count   int
	Row     session.Row
	Actions []ActionID
}

// Plan is an ordered, immutable description of the surface contents. It is
// always replaced wholesale, never patched in place. StorePath locates the
// session store backing the snapshot; transcript lookups resolve against it.
type Plan struct {
	Entries   []Entry
	StorePath string
}

// SessionEntries returns only the session rows of the plan, in display order.
func (p Plan) SessionEntries() []Entry {
	out := make([]Entry, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Kind == KindSession {
			out = append(out, e)
		}
	}
	return out
}

// Input bundles everything Build needs. Snapshot and ErrorText mirror the
// cache fields: at most one of the two is set after a settled refresh.
type Input struct {
	Snapshot     *session.Snapshot
	ErrorText    string
	Conn         gateway.ConnState
	Now          time.Time
	ActiveWindow time.Duration
}

// Build computes the presentation plan. It is deterministic: identical inputs
// always yield identical, order-stable plans.
func Build(in Input) Plan {
	if in.Conn != gateway.Connected {
		return Plan{Entries: []Entry{{Kind: KindConnectionMessage, Status: connectionMessage}}}
	}
	if in.Snapshot == nil {
		// An errorText from a previous failed refresh is shown even while a
		// fresh attempt may be in flight.
		status := in.ErrorText
		if status == "" {
			status = loadingStatus
		}
		return Plan{Entries: []Entry{{Kind: KindLoadingHeader, Status: status}}}
	}

	window := in.ActiveWindow
	if window <= 0 {
		window = DefaultActiveWindow
	}
	rows := activeRows(in.Snapshot.Rows, in.Now, window)
	if len(rows) == 0 {
		return Plan{
			Entries: []Entry{
				{Kind: KindHeader, Count: 0},
				{Kind: KindEmptyMessage, Status: emptyMessage},
			},
			StorePath: in.Snapshot.StorePath,
		}
	}
	entries := make([]Entry, 0, len(rows)+1)
	entries = append(entries, Entry{Kind: KindHeader, Count: len(rows)})
	for _, row := range rows {
		entries = append(entries, Entry{Kind: KindSession, Row: row, Actions: actionsFor(row)})
	}
	return Plan{Entries: entries, StorePath: in.Snapshot.StorePath}
}

// activeRows filters stale rows and orders the survivors: the home session
// pinned first, then most recently active first. Rows with no update
// timestamp (other than "main") are indeterminate-age and dropped.
func activeRows(rows []session.Row, now time.Time, window time.Duration) []session.Row {
	kept := make([]session.Row, 0, len(rows))
	for _, row := range rows {
		if row.IsMain() {
			kept = append(kept, row)
			continue
		}
		age, ok := row.Age(now)
		if !ok || age > window {
			continue
		}
		kept = append(kept, row)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.IsMain() != b.IsMain() {
			return a.IsMain()
		}
		return updatedAtOf(a).After(updatedAtOf(b))
	})
	return kept
}

func updatedAtOf(row session.Row) time.Time {
	if row.UpdatedAt == nil {
		return time.Time{}
	}
	return *row.UpdatedAt
}

// actionsFor computes the per-row action set. Delete is withheld for the home
// session here, at plan-construction time, not just at confirmation time.
func actionsFor(row session.Row) []ActionID {
	actions := []ActionID{ActionPatchThinking, ActionPatchVerbose, ActionReset, ActionCompact}
	if !row.IsMain() {
		actions = append(actions, ActionDelete)
	}
	if row.SessionID != "" {
		actions = append(actions, ActionOpenLog)
	}
	return actions
}
