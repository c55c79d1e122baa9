package ui

import (
	"fmt"
	"time"

	"github.com/thecoder93/openclaw/internal/format/table"
	"github.com/thecoder93/openclaw/internal/plan"
	"github.com/thecoder93/openclaw/internal/session"
	uistate "github.com/thecoder93/openclaw/internal/ui/state"
)

const shortIDLength = 8

// buildListContent turns the plan's session entries into the aligned column
// header and list items. The column header is formatted together with the
// rows so every column lines up.
func buildListContent(p plan.Plan) (string, []uistate.Item) {
	sessions := p.SessionEntries()
	if len(sessions) == 0 {
		return "", nil
	}
	now := time.Now()
	rows := make([][]string, 0, len(sessions)+1)
	rows = append(rows, []string{"", "KEY", "SESSION", "AGE", "THINKING", "VERBOSE"})
	for _, e := range sessions {
		rows = append(rows, sessionColumns(e.Row, now))
	}
	lines := table.Format(rows, []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignLeft,
		table.AlignRight, table.AlignLeft, table.AlignLeft,
	})
	items := make([]uistate.Item, 0, len(sessions))
	for i, e := range sessions {
		items = append(items, uistate.Item{ID: e.Row.Key, Label: lines[i+1]})
	}
	return lines[0], items
}

func sessionColumns(row session.Row, now time.Time) []string {
	pin := " "
	if row.IsMain() {
		pin = "*"
	}
	return []string{
		pin,
		row.Key,
		shortID(row.SessionID),
		formatAge(row, now),
		thinkingLabel(row.Thinking),
		verboseLabel(row.Verbose),
	}
}

func shortID(id string) string {
	if id == "" {
		return "-"
	}
	runes := []rune(id)
	if len(runes) <= shortIDLength {
		return id
	}
	return string(runes[:shortIDLength])
}

func thinkingLabel(level *session.ThinkingLevel) string {
	if level == nil {
		return "-"
	}
	return string(*level)
}

func verboseLabel(level *session.VerboseLevel) string {
	if level == nil {
		return "-"
	}
	return string(*level)
}

// formatAge renders elapsed time in the shortest sensible unit.
func formatAge(row session.Row, now time.Time) string {
	age, ok := row.Age(now)
	if !ok {
		return "-"
	}
	switch {
	case age < 0:
		return "now"
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}

// actionLabel maps a plan action to its menu text.
func actionLabel(id plan.ActionID) string {
	switch id {
	case plan.ActionPatchThinking:
		return "Set thinking level"
	case plan.ActionPatchVerbose:
		return "Set verbose output"
	case plan.ActionReset:
		return "Reset session"
	case plan.ActionCompact:
		return "Compact transcript"
	case plan.ActionDelete:
		return "Delete session"
	case plan.ActionOpenLog:
		return "Open log"
	default:
		return string(id)
	}
}

// thinkingOptions builds the picker choices for the thinking level action.
func thinkingOptions() []pickOption {
	levels := session.ThinkingLevels()
	options := make([]pickOption, 0, len(levels)+1)
	for _, level := range levels {
		value := string(level)
		options = append(options, pickOption{label: value, value: &value})
	}
	options = append(options, pickOption{label: "clear override"})
	return options
}

// verboseOptions builds the picker choices for the verbose output action.
func verboseOptions() []pickOption {
	on := string(session.VerboseOn)
	off := string(session.VerboseOff)
	return []pickOption{
		{label: on, value: &on},
		{label: off, value: &off},
		{label: "clear override"},
	}
}
