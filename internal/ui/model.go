// Package ui renders the sessions popup and translates key input into
// controller and dispatcher calls. The model never computes what to display;
// it consumes presentation plans wholesale and draws them.
package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/thecoder93/openclaw/internal/logging/events"
	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/thecoder93/openclaw/internal/session"
	"github.com/thecoder93/openclaw/internal/theme"
	uistate "github.com/thecoder93/openclaw/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

// Mode selects which surface the key handler and renderer operate on.
type Mode int

const (
	ModeList Mode = iota
	ModeActions
	ModePick
	ModeConfirm
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// SurfaceController mirrors the lifecycle controller operations the UI
// drives: open on start, close on quit, forced refresh on demand.
type SurfaceController interface {
	Open()
	Close()
	RefreshNow()
}

// ActionRunner is the dispatcher surface invoked from key handlers. All calls
// run on command goroutines because confirmation blocks.
type ActionRunner interface {
	PatchThinking(ctx context.Context, key string, level *session.ThinkingLevel)
	PatchVerbose(ctx context.Context, key string, level *session.VerboseLevel)
	ResetSession(ctx context.Context, key string)
	CompactSession(ctx context.Context, key string)
	DeleteSession(ctx context.Context, key string)
	OpenSessionLog(sessionID, storePath string)
}

// ConnectionProber triggers an immediate connectivity check.
type ConnectionProber interface {
	Probe()
}

// actionMenu is the per-session command list shown after selecting a row.
type actionMenu struct {
	key     string
	actions []plan.ActionID
	cursor  int
}

// pickOption is one choice in a level picker. A nil value clears the
// override on the session instead of setting one.
type pickOption struct {
	label string
	value *string
}

type levelPicker struct {
	key     string
	action  plan.ActionID
	options []pickOption
	cursor  int
}

type confirmState struct {
	title       string
	message     string
	actionLabel string
	resp        chan bool
}

type actionDoneMsg struct{}

// Model implements the Bubble Tea model for the sessions popup.
type Model struct {
	level       *level
	plan        plan.Plan
	entries     map[string]plan.Entry
	storePath   string
	headerLabel string

	mode    Mode
	menu    *actionMenu
	pick    *levelPicker
	confirm *confirmState

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	surface SurfaceController
	runner  ActionRunner
	probe   ConnectionProber
}

// NewModel initialises the UI state with the given controller wiring.
func NewModel(width, height int, showFooter bool, surface SurfaceController, runner ActionRunner, probe ConnectionProber) *Model {
	m := &Model{
		level:      uistate.NewLevel(nil),
		entries:    map[string]plan.Entry{},
		mode:       ModeList,
		showFooter: showFooter,
		surface:    surface,
		runner:     runner,
		probe:      probe,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.openSurface()}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) openSurface() tea.Cmd {
	return func() tea.Msg {
		if m.surface != nil {
			m.surface.Open()
		}
		return nil
	}
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(PlanMsg{}):           m.handlePlanMsg,
		reflect.TypeOf(ReportMsg{}):         m.handleReportMsg,
		reflect.TypeOf(ConfirmRequestMsg{}): m.handleConfirmRequestMsg,
		reflect.TypeOf(actionDoneMsg{}):     m.handleActionDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

// handlePlanMsg replaces the displayed plan wholesale. The selection follows
// the session key, not the list index, across replacements.
func (m *Model) handlePlanMsg(msg tea.Msg) tea.Cmd {
	pm, ok := msg.(PlanMsg)
	if !ok {
		return nil
	}
	m.plan = pm.Plan
	m.storePath = pm.Plan.StorePath
	m.entries = make(map[string]plan.Entry)
	for _, e := range pm.Plan.SessionEntries() {
		m.entries[e.Row.Key] = e
	}
	m.headerLabel, m.level.Full = buildListContent(pm.Plan)
	m.level.UpdateItems(m.level.Full)
	events.UI.Filter(m.level.Filter, len(m.level.Items))

	// A vanished session invalidates any overlay that referenced it.
	if m.menu != nil {
		if _, ok := m.entries[m.menu.key]; !ok {
			m.menu = nil
			if m.mode == ModeActions {
				m.mode = ModeList
			}
		}
	}
	if m.pick != nil {
		if _, ok := m.entries[m.pick.key]; !ok {
			m.pick = nil
			if m.mode == ModePick {
				m.mode = ModeList
			}
		}
	}
	return nil
}

func (m *Model) handleReportMsg(msg tea.Msg) tea.Cmd {
	rm, ok := msg.(ReportMsg)
	if !ok {
		return nil
	}
	events.UI.ReportError(rm.Title, rm.Err)
	if rm.Err != nil {
		m.errMsg = rm.Title + ": " + rm.Err.Error()
	} else {
		m.errMsg = rm.Title
	}
	return nil
}

func (m *Model) handleConfirmRequestMsg(msg tea.Msg) tea.Cmd {
	cm, ok := msg.(ConfirmRequestMsg)
	if !ok {
		return nil
	}
	events.UI.ConfirmShown(cm.Title)
	m.confirm = &confirmState{
		title:       cm.Title,
		message:     cm.Message,
		actionLabel: cm.ActionLabel,
		resp:        cm.resp,
	}
	m.mode = ModeConfirm
	return nil
}

func (m *Model) handleActionDoneMsg(tea.Msg) tea.Cmd {
	return nil
}

// selectedEntry returns the plan entry under the list cursor.
func (m *Model) selectedEntry() (plan.Entry, bool) {
	item, ok := m.level.CursorItem()
	if !ok {
		return plan.Entry{}, false
	}
	entry, ok := m.entries[item.ID]
	return entry, ok
}

func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.infoExpire = time.Now().Add(3 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg == "" || time.Now().After(m.infoExpire) {
		return ""
	}
	return m.infoMsg
}
