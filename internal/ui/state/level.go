// Package state holds the list-widget state for the sessions popup: cursor
// position, fuzzy filter, and viewport scrolling over a replaceable item set.
package state

// Level encapsulates list state such as cursor position, filter, and viewport.
type Level struct {
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level over the provided items.
func NewLevel(items []Item) *Level {
	l := &Level{LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// CursorID returns the ID under the cursor, or "" when the list is empty.
func (l *Level) CursorID() string {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return ""
	}
	return l.Items[l.Cursor].ID
}

// CursorItem returns the item under the cursor.
func (l *Level) CursorItem() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the item set. The cursor follows the previously
// selected ID when it survives the replacement, so a background refresh never
// yanks the selection to a different session.
func (l *Level) UpdateItems(items []Item) {
	prevID := l.CursorID()
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if idx := l.IndexOf(prevID); idx >= 0 {
		l.Cursor = idx
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
