package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/thecoder93/openclaw/internal/gateway"
	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/thecoder93/openclaw/internal/session"
)

var emptySnapshot = session.Snapshot{StorePath: "/data/openclaw/sessions.json"}

func TestViewShowsConnectionMessage(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, plan.Build(plan.Input{Conn: gateway.Disconnected, Now: time.Now()}))
	view := m.View()
	if !strings.Contains(view, "No connection to gateway") {
		t.Fatalf("expected connection message, got:\n%s", view)
	}
}

func TestViewShowsLoadingBeforeFirstSnapshot(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, plan.Build(plan.Input{Conn: gateway.Connected, Now: time.Now()}))
	view := m.View()
	if !strings.Contains(view, "Loading sessions…") {
		t.Fatalf("expected loading header, got:\n%s", view)
	}
}

func TestViewShowsEmptyMessage(t *testing.T) {
	m, _, _, _ := newTestModel()
	snapPlan := plan.Build(plan.Input{
		Snapshot: &emptySnapshot,
		Conn:     gateway.Connected,
		Now:      time.Now(),
	})
	sendPlan(m, snapPlan)
	view := m.View()
	if !strings.Contains(view, "sessions (0)") {
		t.Fatalf("expected zero-count header, got:\n%s", view)
	}
	if !strings.Contains(view, "No active sessions") {
		t.Fatalf("expected empty message, got:\n%s", view)
	}
}

func TestViewListsSessions(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	view := m.View()
	if !strings.Contains(view, "sessions (2)") {
		t.Fatalf("expected session count, got:\n%s", view)
	}
	for _, fragment := range []string{"KEY", "main", "research", "sid-main"} {
		if !strings.Contains(view, fragment) {
			t.Fatalf("view missing %q:\n%s", fragment, view)
		}
	}
}

func TestViewMarksSelectedRow(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	var selected, rest string
	for _, line := range strings.Split(m.View(), "\n") {
		switch {
		case strings.Contains(line, "sid-main"):
			selected = line
		case strings.Contains(line, "sid-research"):
			rest = line
		}
	}
	if !strings.Contains(selected, "> ") {
		t.Fatalf("selected row missing indicator: %q", selected)
	}
	if strings.Contains(rest, "> ") {
		t.Fatalf("unselected row carries indicator: %q", rest)
	}
}

func TestViewFitsWithinHeight(t *testing.T) {
	surface := &fakeSurface{}
	m := NewModel(40, 8, false, surface, &fakeRunner{}, &fakeProbe{})
	now := time.Now()
	rows := []session.Row{{Key: session.MainKey, SessionID: "sid-main", UpdatedAt: ts(now)}}
	for _, key := range []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"} {
		rows = append(rows, session.Row{Key: key, SessionID: "sid-" + key, UpdatedAt: ts(now.Add(-time.Minute))})
	}
	snap := &session.Snapshot{Rows: rows}
	sendPlan(m, plan.Build(plan.Input{Snapshot: snap, Conn: gateway.Connected, Now: now}))

	view := m.View()
	if got := strings.Count(view, "\n") + 1; got > 8 {
		t.Fatalf("view spans %d rows for an 8-row surface:\n%s", got, view)
	}
	if !strings.Contains(view, "sid-main") {
		t.Fatalf("list rows squeezed out entirely:\n%s", view)
	}
	if !strings.Contains(view, "> ") {
		t.Fatalf("bottom bar clipped, no prompt:\n%s", view)
	}
}

func TestViewConfirmOverlay(t *testing.T) {
	m, _, _, _ := newTestModel()
	resp := make(chan bool, 1)
	m.Update(ConfirmRequestMsg{
		Title:       "Delete session",
		Message:     "Remove \"research\" and archive its transcript?",
		ActionLabel: "Delete",
		resp:        resp,
	})
	view := m.View()
	if !strings.Contains(view, "Delete session") {
		t.Fatalf("expected confirm title, got:\n%s", view)
	}
	if !strings.Contains(view, "[y] Delete") {
		t.Fatalf("expected confirm hint, got:\n%s", view)
	}
}

func TestViewActionMenu(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	m.Update(key("enter"))
	view := m.View()
	if !strings.Contains(view, "session: main") {
		t.Fatalf("expected menu title, got:\n%s", view)
	}
	if !strings.Contains(view, "Set thinking level") {
		t.Fatalf("expected action label, got:\n%s", view)
	}
}
