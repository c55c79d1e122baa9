package ui

import tea "github.com/charmbracelet/bubbletea"

// runAction executes a dispatcher call on a command goroutine so the update
// loop stays responsive while the call blocks on confirmation or network.
func (m *Model) runAction(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return actionDoneMsg{}
	}
}

// refreshCmd probes connectivity and forces a cache refresh.
func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if m.probe != nil {
			m.probe.Probe()
		}
		if m.surface != nil {
			m.surface.RefreshNow()
		}
		return actionDoneMsg{}
	}
}
