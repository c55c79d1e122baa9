package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/thecoder93/openclaw/internal/gateway"
	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/thecoder93/openclaw/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeSurface struct {
	opens     int
	closes    int
	refreshes int
}

func (f *fakeSurface) Open()       { f.opens++ }
func (f *fakeSurface) Close()      { f.closes++ }
func (f *fakeSurface) RefreshNow() { f.refreshes++ }

type fakeRunner struct {
	calls []string
	store string
}

func (f *fakeRunner) PatchThinking(_ context.Context, key string, level *session.ThinkingLevel) {
	if level == nil {
		f.calls = append(f.calls, "thinking:"+key+":clear")
		return
	}
	f.calls = append(f.calls, "thinking:"+key+":"+string(*level))
}

func (f *fakeRunner) PatchVerbose(_ context.Context, key string, level *session.VerboseLevel) {
	if level == nil {
		f.calls = append(f.calls, "verbose:"+key+":clear")
		return
	}
	f.calls = append(f.calls, "verbose:"+key+":"+string(*level))
}

func (f *fakeRunner) ResetSession(_ context.Context, key string)   { f.calls = append(f.calls, "reset:"+key) }
func (f *fakeRunner) CompactSession(_ context.Context, key string) { f.calls = append(f.calls, "compact:"+key) }
func (f *fakeRunner) DeleteSession(_ context.Context, key string)  { f.calls = append(f.calls, "delete:"+key) }

func (f *fakeRunner) OpenSessionLog(sessionID, storePath string) {
	f.calls = append(f.calls, "open-log:"+sessionID)
	f.store = storePath
}

type fakeProbe struct{ probes int }

func (f *fakeProbe) Probe() { f.probes++ }

func newTestModel() (*Model, *fakeSurface, *fakeRunner, *fakeProbe) {
	surface := &fakeSurface{}
	runner := &fakeRunner{}
	probe := &fakeProbe{}
	m := NewModel(80, 24, false, surface, runner, probe)
	return m, surface, runner, probe
}

func ts(t time.Time) *time.Time { return &t }

func testPlan(now time.Time) plan.Plan {
	snap := &session.Snapshot{
		Rows: []session.Row{
			{Key: "research", SessionID: "sid-research", UpdatedAt: ts(now.Add(-5 * time.Minute))},
			{Key: session.MainKey, SessionID: "sid-main", UpdatedAt: ts(now.Add(-time.Minute))},
		},
		StorePath: "/data/openclaw/sessions.json",
	}
	return plan.Build(plan.Input{Snapshot: snap, Conn: gateway.Connected, Now: now})
}

func sendPlan(m *Model, p plan.Plan) {
	m.Update(PlanMsg{Plan: p})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPlanMsgBuildsSessionList(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	if len(m.level.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.level.Items))
	}
	if m.level.Items[0].ID != session.MainKey {
		t.Fatalf("home session not pinned first: %q", m.level.Items[0].ID)
	}
	if m.storePath != "/data/openclaw/sessions.json" {
		t.Fatalf("store path not carried: %q", m.storePath)
	}
}

func TestSelectionFollowsKeyAcrossPlans(t *testing.T) {
	m, _, _, _ := newTestModel()
	now := time.Now()
	sendPlan(m, testPlan(now))
	m.Update(key("down"))
	if got := m.level.CursorID(); got != "research" {
		t.Fatalf("cursor = %q, want research", got)
	}

	snap := &session.Snapshot{
		Rows: []session.Row{
			{Key: "research", SessionID: "sid-research", UpdatedAt: ts(now.Add(-time.Second))},
			{Key: "newest", SessionID: "sid-new", UpdatedAt: ts(now)},
			{Key: session.MainKey, SessionID: "sid-main", UpdatedAt: ts(now)},
		},
	}
	sendPlan(m, plan.Build(plan.Input{Snapshot: snap, Conn: gateway.Connected, Now: now}))
	if got := m.level.CursorID(); got != "research" {
		t.Fatalf("selection lost across plan update: %q", got)
	}
}

func TestEnterOpensActionMenuWithoutDeleteForMain(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	m.Update(key("enter"))
	if m.mode != ModeActions || m.menu == nil {
		t.Fatalf("mode = %v, menu = %v", m.mode, m.menu)
	}
	if m.menu.key != session.MainKey {
		t.Fatalf("menu for %q, want main", m.menu.key)
	}
	for _, a := range m.menu.actions {
		if a == plan.ActionDelete {
			t.Fatal("delete offered for the home session")
		}
	}
}

func TestDeleteActionInvokesRunner(t *testing.T) {
	m, _, runner, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	m.Update(key("down"))
	m.Update(key("enter"))
	if m.menu.key != "research" {
		t.Fatalf("menu for %q, want research", m.menu.key)
	}
	idx := -1
	for i, a := range m.menu.actions {
		if a == plan.ActionDelete {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("delete missing for non-main session")
	}
	m.menu.cursor = idx
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	cmd()
	found := false
	for _, call := range runner.calls {
		if call == "delete:research" {
			found = true
		}
	}
	if !found {
		t.Fatalf("runner calls = %v", runner.calls)
	}
	if m.mode != ModeList {
		t.Fatalf("mode = %v, want list", m.mode)
	}
}

func TestOpenLogPassesStorePath(t *testing.T) {
	m, _, runner, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	m.Update(key("enter"))
	idx := -1
	for i, a := range m.menu.actions {
		if a == plan.ActionOpenLog {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("open-log missing despite session id")
	}
	m.menu.cursor = idx
	_, cmd := m.Update(key("enter"))
	cmd()
	if runner.store != "/data/openclaw/sessions.json" {
		t.Fatalf("store path = %q", runner.store)
	}
}

func TestThinkingPickerAppliesLevel(t *testing.T) {
	m, _, runner, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	m.Update(key("enter"))
	m.Update(key("enter"))
	if m.mode != ModePick || m.pick == nil {
		t.Fatalf("expected picker, mode = %v", m.mode)
	}
	m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	cmd()
	want := "thinking:main:" + string(session.ThinkingMinimal)
	if len(runner.calls) != 1 || runner.calls[0] != want {
		t.Fatalf("runner calls = %v, want [%s]", runner.calls, want)
	}
}

func TestConfirmRequestAnsweredWithYes(t *testing.T) {
	m, _, _, _ := newTestModel()
	resp := make(chan bool, 1)
	m.Update(ConfirmRequestMsg{Title: "Delete session", Message: "sure?", ActionLabel: "Delete", resp: resp})
	if m.mode != ModeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	m.Update(key("y"))
	select {
	case got := <-resp:
		if !got {
			t.Fatal("expected accepted confirmation")
		}
	default:
		t.Fatal("no response delivered")
	}
	if m.mode != ModeList {
		t.Fatalf("mode = %v after confirm", m.mode)
	}
}

func TestFilterNarrowsList(t *testing.T) {
	m, _, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	for _, r := range "res" {
		m.Update(key(string(r)))
	}
	if len(m.level.Items) != 1 || m.level.Items[0].ID != "research" {
		t.Fatalf("filtered items = %v", m.level.Items)
	}
	m.Update(key("esc"))
	if m.level.Filter != "" {
		t.Fatalf("esc should clear the filter, got %q", m.level.Filter)
	}
	if len(m.level.Items) != 2 {
		t.Fatalf("items = %d after clear", len(m.level.Items))
	}
}

func TestEscQuitsAndClosesSurface(t *testing.T) {
	m, surface, _, _ := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if surface.closes != 1 {
		t.Fatalf("closes = %d, want 1", surface.closes)
	}
}

func TestCtrlRForcesRefreshAndProbe(t *testing.T) {
	m, surface, _, probe := newTestModel()
	sendPlan(m, testPlan(time.Now()))
	_, cmd := m.Update(key("ctrl+r"))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	cmd()
	if surface.refreshes != 1 || probe.probes != 1 {
		t.Fatalf("refreshes = %d, probes = %d", surface.refreshes, probe.probes)
	}
}

func TestReportMsgShowsError(t *testing.T) {
	m, _, _, _ := newTestModel()
	m.Update(ReportMsg{Title: "Delete failed", Err: context.DeadlineExceeded})
	if !strings.HasPrefix(m.errMsg, "Delete failed: ") {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
}
