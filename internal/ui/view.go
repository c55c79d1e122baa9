package ui

import (
	"fmt"
	"strings"

	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// itemGutter prefixes every list row; the selected row carries the indicator.
const (
	itemGutter     = "  "
	selectedGutter = "> "
)

type styledLine struct {
	prefix      string
	prefixStyle *lipgloss.Style
	text        string
	style       *lipgloss.Style
}

func itemLine(label string, selected bool) styledLine {
	if selected {
		return styledLine{
			prefix:      selectedGutter,
			prefixStyle: styles.SelectedItemIndicator,
			text:        label,
			style:       styles.SelectedItem,
		}
	}
	return styledLine{
		prefix:      itemGutter,
		prefixStyle: styles.ItemIndicator,
		text:        label,
		style:       styles.Item,
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case ModeConfirm:
		if m.confirm != nil {
			return m.viewConfirm()
		}
	case ModeActions:
		if m.menu != nil {
			return m.viewActions()
		}
	case ModePick:
		if m.pick != nil {
			return m.viewPick()
		}
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	lines := make([]styledLine, 0, 16)
	listRendered := false
	for _, e := range m.plan.Entries {
		switch e.Kind {
		case plan.KindConnectionMessage:
			lines = append(lines, styledLine{text: e.Status, style: styles.Error})
		case plan.KindLoadingHeader:
			lines = append(lines, styledLine{text: e.Status, style: styles.Loading})
		case plan.KindEmptyMessage:
			lines = append(lines, styledLine{text: e.Status, style: styles.Info})
		case plan.KindHeader:
			lines = append(lines, styledLine{text: fmt.Sprintf("sessions (%d)", e.Count), style: styles.Header})
			if m.headerLabel != "" {
				lines = append(lines, styledLine{text: itemGutter + m.headerLabel, style: styles.Header})
			}
		case plan.KindSession:
			if listRendered {
				continue
			}
			listRendered = true
			lines = append(lines, m.listLines()...)
		}
	}
	if len(m.plan.Entries) == 0 {
		lines = append(lines, styledLine{text: "Loading sessions…", style: styles.Loading})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "↑/↓ move  enter actions  ctrl+r refresh  esc quit", style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (error/status + prompt).
	lines = limitHeight(lines, m.height-2)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: m.errMsg, style: styles.Error}
	}
	bottom := applyWidth([]styledLine{statusLine}, m.width)
	rendered := renderLines(lines)
	if rendered != "" {
		rendered += "\n"
	}
	return rendered + renderLines(bottom) + "\n" + m.filterPrompt()
}

// listLines renders the visible slice of filtered session rows.
func (m *Model) listLines() []styledLine {
	maxItems := m.maxVisibleItems()
	m.level.EnsureCursorVisible(maxItems)
	items := m.level.Items
	if len(items) == 0 {
		msg := "(no entries)"
		if m.level.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.level.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	start := 0
	if maxItems > 0 && len(items) > maxItems {
		start = m.level.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(items) {
			start = len(items) - maxItems
		}
		items = items[start : start+maxItems]
	}
	lines := make([]styledLine, 0, len(items))
	for i, item := range items {
		lines = append(lines, itemLine(item.Label, start+i == m.level.Cursor))
	}
	return lines
}

func (m *Model) viewActions() string {
	lines := make([]styledLine, 0, len(m.menu.actions)+3)
	lines = append(lines, styledLine{text: "session: " + m.menu.key, style: styles.Header})
	lines = append(lines, styledLine{})
	for i, action := range m.menu.actions {
		lines = append(lines, itemLine(actionLabel(action), i == m.menu.cursor))
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "enter run  esc back", style: styles.Footer})
	lines = limitHeight(lines, m.height)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) viewPick() string {
	title := actionLabel(m.pick.action) + ": " + m.pick.key
	lines := make([]styledLine, 0, len(m.pick.options)+3)
	lines = append(lines, styledLine{text: title, style: styles.Header})
	lines = append(lines, styledLine{})
	for i, option := range m.pick.options {
		lines = append(lines, itemLine(option.label, i == m.pick.cursor))
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "enter apply  esc back", style: styles.Footer})
	lines = limitHeight(lines, m.height)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) viewConfirm() string {
	width := m.width
	if width <= 0 {
		width = 72
	}
	message := m.confirm.message
	if width > 4 {
		message = wordwrap.String(message, width-2)
	}
	lines := []styledLine{
		{text: m.confirm.title, style: styles.ConfirmTitle},
		{},
	}
	for _, part := range strings.Split(message, "\n") {
		lines = append(lines, styledLine{text: part, style: styles.ConfirmBody})
	}
	lines = append(lines, styledLine{})
	hint := fmt.Sprintf("[y] %s   [n] Cancel", m.confirm.actionLabel)
	lines = append(lines, styledLine{text: hint, style: styles.Footer})
	lines = limitHeight(lines, m.height)
	return renderLines(applyWidth(lines, m.width))
}

// filterPrompt renders the bottom input line with the blinking cursor.
func (m *Model) filterPrompt() string {
	runes := []rune(m.level.Filter)
	pos := m.level.FilterCursorPos()
	under := " "
	if pos < len(runes) {
		under = string(runes[pos])
	}
	c := m.filterCursor
	c.SetChar(under)
	before := string(runes[:pos])
	after := ""
	if pos < len(runes) {
		after = string(runes[pos+1:])
	}
	return renderStyled(styles.FilterPrompt, "> ") +
		renderStyled(styles.Filter, before) +
		c.View() +
		renderStyled(styles.Filter, after)
}

// maxVisibleItems computes the row budget for session items after the two
// header rows, the two bottom-bar rows, and the optional footer take their
// share.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return 0
	}
	reserved := 2 + 2
	if m.showFooter {
		reserved += 2
	}
	avail := m.height - reserved
	if avail < 1 {
		return 1
	}
	return avail
}

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderStyled(line.prefixStyle, line.prefix) + renderStyled(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	for i := range lines {
		budget := width - len([]rune(lines[i].prefix))
		if budget < 0 {
			budget = 0
		}
		lines[i].text = truncate.String(lines[i].text, uint(budget))
	}
	return lines
}

func limitHeight(lines []styledLine, max int) []styledLine {
	if max <= 0 || len(lines) <= max {
		return lines
	}
	return lines[:max]
}
