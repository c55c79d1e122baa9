package session

import (
	"fmt"
	"strings"
	"time"
)

// MainKey is the distinguished session key that is always visible and never
// offered for deletion.
const MainKey = "main"

// ThinkingLevel is the per-session thinking depth override.
type ThinkingLevel string

const (
	ThinkingOff     ThinkingLevel = "off"
	ThinkingMinimal ThinkingLevel = "minimal"
	ThinkingLow     ThinkingLevel = "low"
	ThinkingMedium  ThinkingLevel = "medium"
	ThinkingHigh    ThinkingLevel = "high"
)

// ThinkingLevels lists the accepted thinking levels in menu order.
func ThinkingLevels() []ThinkingLevel {
	return []ThinkingLevel{ThinkingOff, ThinkingMinimal, ThinkingLow, ThinkingMedium, ThinkingHigh}
}

// ParseThinkingLevel validates a user- or wire-supplied thinking level.
func ParseThinkingLevel(value string) (ThinkingLevel, error) {
	level := ThinkingLevel(strings.ToLower(strings.TrimSpace(value)))
	switch level {
	case ThinkingOff, ThinkingMinimal, ThinkingLow, ThinkingMedium, ThinkingHigh:
		return level, nil
	}
	return "", fmt.Errorf("invalid thinking level %q", value)
}

// VerboseLevel is the per-session verbose output override.
type VerboseLevel string

const (
	VerboseOn  VerboseLevel = "on"
	VerboseOff VerboseLevel = "off"
)

// ParseVerboseLevel validates a user- or wire-supplied verbose level.
func ParseVerboseLevel(value string) (VerboseLevel, error) {
	level := VerboseLevel(strings.ToLower(strings.TrimSpace(value)))
	switch level {
	case VerboseOn, VerboseOff:
		return level, nil
	}
	return "", fmt.Errorf("invalid verbose level %q", value)
}

// Row is a single session entry as reported by the gateway session store.
// Rows are immutable values; a new fetch produces a wholly new set.
type Row struct {
	Key       string
	SessionID string
	UpdatedAt *time.Time
	Thinking  *ThinkingLevel
	Verbose   *VerboseLevel
}

// IsMain reports whether the row is the pinned home session.
func (r Row) IsMain() bool {
	return r.Key == MainKey
}

// Age returns the time elapsed since the row was last updated. The second
// return value is false when the gateway reported no update timestamp.
func (r Row) Age(now time.Time) (time.Duration, bool) {
	if r.UpdatedAt == nil {
		return 0, false
	}
	return now.Sub(*r.UpdatedAt), true
}

// Snapshot is a point-in-time consistent read of the session store. StorePath
// is an opaque locator passed through to session actions.
type Snapshot struct {
	Rows      []Row
	StorePath string
}

// Clone returns a copy whose row slice is independent of the receiver's.
func (s Snapshot) Clone() Snapshot {
	if len(s.Rows) == 0 {
		return Snapshot{StorePath: s.StorePath}
	}
	rows := make([]Row, len(s.Rows))
	copy(rows, s.Rows)
	return Snapshot{Rows: rows, StorePath: s.StorePath}
}
