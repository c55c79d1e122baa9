// Package table pads rows of cells into aligned columns for fixed-width
// terminal output.
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format returns the rows padded so every column is as wide as its widest
// cell. Ragged rows are tolerated; missing cells render empty.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(widths))
		for c := range widths {
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				cells[c] = padLeft(cell, widths[c])
			} else {
				cells[c] = padRight(cell, widths[c])
			}
		}
		out[i] = strings.TrimRight(strings.Join(cells, columnGap), " ")
	}
	return out
}

func columnWidths(rows [][]string) []int {
	count := 0
	for _, row := range rows {
		if len(row) > count {
			count = len(row)
		}
	}
	widths := make([]int, count)
	for _, row := range rows {
		for c, cell := range row {
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func cellWidth(text string) int {
	return len([]rune(text))
}

func padLeft(text string, width int) string {
	if pad := width - cellWidth(text); pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

func padRight(text string, width int) string {
	if pad := width - cellWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
