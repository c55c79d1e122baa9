package ui

import (
	"context"

	"github.com/thecoder93/openclaw/internal/logging/events"
	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/thecoder93/openclaw/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(key)
	case ModeActions:
		return m.handleActionsKey(key)
	case ModePick:
		return m.handlePickKey(key)
	default:
		return m.handleListKey(key)
	}
}

func (m *Model) handleListKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		if m.level.ClearFilter() {
			m.filterCursorDirty = true
			events.UI.Filter(m.level.Filter, len(m.level.Items))
			return nil
		}
		return m.quit()
	case "up", "ctrl+p":
		if m.level.MoveCursorUp() {
			events.UI.Cursor(m.level.Cursor)
		}
	case "down", "ctrl+n":
		if m.level.MoveCursorDown() {
			events.UI.Cursor(m.level.Cursor)
		}
	case "pgup":
		if m.level.MoveCursorPageUp(m.maxVisibleItems()) {
			events.UI.Cursor(m.level.Cursor)
		}
	case "pgdown":
		if m.level.MoveCursorPageDown(m.maxVisibleItems()) {
			events.UI.Cursor(m.level.Cursor)
		}
	case "home":
		if m.level.MoveCursorHome() {
			events.UI.Cursor(m.level.Cursor)
		}
	case "end":
		if m.level.MoveCursorEnd() {
			events.UI.Cursor(m.level.Cursor)
		}
	case "enter":
		return m.openActionMenu()
	case "ctrl+r":
		return m.refreshCmd()
	case "left":
		if m.level.MoveFilterCursorRuneBackward() {
			m.filterCursorDirty = true
		}
	case "right":
		if m.level.MoveFilterCursorRuneForward() {
			m.filterCursorDirty = true
		}
	case "ctrl+a":
		if m.level.MoveFilterCursorStart() {
			m.filterCursorDirty = true
		}
	case "ctrl+e":
		if m.level.MoveFilterCursorEnd() {
			m.filterCursorDirty = true
		}
	case "backspace":
		if m.level.DeleteFilterRuneBackward() {
			m.filterCursorDirty = true
			events.UI.Filter(m.level.Filter, len(m.level.Items))
		}
	case "ctrl+w":
		if m.level.DeleteFilterWordBackward() {
			m.filterCursorDirty = true
			events.UI.Filter(m.level.Filter, len(m.level.Items))
		}
	case "ctrl+u":
		if m.level.ClearFilter() {
			m.filterCursorDirty = true
			events.UI.Filter(m.level.Filter, len(m.level.Items))
		}
	default:
		if text := keyText(key); text != "" {
			m.errMsg = ""
			m.level.InsertFilterText(text)
			m.filterCursorDirty = true
			events.UI.Filter(m.level.Filter, len(m.level.Items))
		}
	}
	return nil
}

func (m *Model) openActionMenu() tea.Cmd {
	entry, ok := m.selectedEntry()
	if !ok {
		return nil
	}
	m.menu = &actionMenu{
		key:     entry.Row.Key,
		actions: append([]plan.ActionID(nil), entry.Actions...),
	}
	m.mode = ModeActions
	return nil
}

func (m *Model) handleActionsKey(key tea.KeyMsg) tea.Cmd {
	menu := m.menu
	if menu == nil {
		m.mode = ModeList
		return nil
	}
	switch key.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "backspace", "q":
		m.menu = nil
		m.mode = ModeList
	case "up", "ctrl+p":
		if menu.cursor > 0 {
			menu.cursor--
		}
	case "down", "ctrl+n":
		if menu.cursor < len(menu.actions)-1 {
			menu.cursor++
		}
	case "enter":
		return m.invokeAction(menu.key, menu.actions[menu.cursor])
	}
	return nil
}

// invokeAction starts the selected command. Mutating commands run on a
// command goroutine because the dispatcher blocks on confirmation.
func (m *Model) invokeAction(key string, action plan.ActionID) tea.Cmd {
	entry, ok := m.entries[key]
	if !ok {
		m.menu = nil
		m.mode = ModeList
		return nil
	}
	switch action {
	case plan.ActionPatchThinking:
		m.pick = &levelPicker{key: key, action: action, options: thinkingOptions()}
		m.mode = ModePick
		return nil
	case plan.ActionPatchVerbose:
		m.pick = &levelPicker{key: key, action: action, options: verboseOptions()}
		m.mode = ModePick
		return nil
	case plan.ActionReset:
		m.menu = nil
		m.mode = ModeList
		return m.runAction(func() { m.runner.ResetSession(context.Background(), key) })
	case plan.ActionCompact:
		m.menu = nil
		m.mode = ModeList
		return m.runAction(func() { m.runner.CompactSession(context.Background(), key) })
	case plan.ActionDelete:
		m.menu = nil
		m.mode = ModeList
		return m.runAction(func() { m.runner.DeleteSession(context.Background(), key) })
	case plan.ActionOpenLog:
		sessionID := entry.Row.SessionID
		storePath := m.storePath
		m.menu = nil
		m.mode = ModeList
		m.setInfo("Opening log for " + key)
		return m.runAction(func() { m.runner.OpenSessionLog(sessionID, storePath) })
	}
	return nil
}

func (m *Model) handlePickKey(key tea.KeyMsg) tea.Cmd {
	pick := m.pick
	if pick == nil {
		m.mode = ModeList
		return nil
	}
	switch key.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "backspace", "q":
		m.pick = nil
		m.mode = ModeActions
	case "up", "ctrl+p":
		if pick.cursor > 0 {
			pick.cursor--
		}
	case "down", "ctrl+n":
		if pick.cursor < len(pick.options)-1 {
			pick.cursor++
		}
	case "enter":
		option := pick.options[pick.cursor]
		m.pick = nil
		m.menu = nil
		m.mode = ModeList
		return m.applyPick(pick.key, pick.action, option)
	}
	return nil
}

func (m *Model) applyPick(key string, action plan.ActionID, option pickOption) tea.Cmd {
	switch action {
	case plan.ActionPatchThinking:
		var level *session.ThinkingLevel
		if option.value != nil {
			parsed, err := session.ParseThinkingLevel(*option.value)
			if err != nil {
				m.errMsg = err.Error()
				return nil
			}
			level = &parsed
		}
		return m.runAction(func() { m.runner.PatchThinking(context.Background(), key, level) })
	case plan.ActionPatchVerbose:
		var level *session.VerboseLevel
		if option.value != nil {
			parsed, err := session.ParseVerboseLevel(*option.value)
			if err != nil {
				m.errMsg = err.Error()
				return nil
			}
			level = &parsed
		}
		return m.runAction(func() { m.runner.PatchVerbose(context.Background(), key, level) })
	}
	return nil
}

func (m *Model) handleConfirmKey(key tea.KeyMsg) tea.Cmd {
	confirm := m.confirm
	if confirm == nil {
		m.mode = ModeList
		return nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		m.respondConfirm(true)
	case "n", "N", "esc", "q":
		m.respondConfirm(false)
	case "ctrl+c":
		m.respondConfirm(false)
		return m.quit()
	}
	return nil
}

func (m *Model) respondConfirm(accepted bool) {
	if m.confirm != nil && m.confirm.resp != nil {
		m.confirm.resp <- accepted
	}
	m.confirm = nil
	m.mode = ModeList
}

func (m *Model) quit() tea.Cmd {
	if m.surface != nil {
		m.surface.Close()
	}
	return tea.Quit
}

func keyText(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyRunes:
		return string(key.Runes)
	case tea.KeySpace:
		return " "
	}
	return ""
}
