package gateway

import (
	"time"

	"github.com/thecoder93/openclaw/internal/session"
)

type sessionsResponse struct {
	StorePath string       `json:"storePath"`
	Sessions  []sessionRow `json:"sessions"`
}

type sessionRow struct {
	Key       string `json:"key"`
	SessionID string `json:"sessionId,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"` // unix milliseconds, 0 when unknown
	Thinking  string `json:"thinkingLevel,omitempty"`
	Verbose   string `json:"verboseLevel,omitempty"`
}

type patchRequest struct {
	Key   string  `json:"key"`
	Field string  `json:"field"`
	Value *string `json:"value,omitempty"`
}

type compactRequest struct {
	Key      string `json:"key"`
	MaxLines int    `json:"maxLines"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type healthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
}

func (r sessionRow) toRow() session.Row {
	row := session.Row{Key: r.Key, SessionID: r.SessionID}
	if r.UpdatedAt > 0 {
		ts := time.UnixMilli(r.UpdatedAt).UTC()
		row.UpdatedAt = &ts
	}
	if level, err := session.ParseThinkingLevel(r.Thinking); err == nil {
		row.Thinking = &level
	}
	if level, err := session.ParseVerboseLevel(r.Verbose); err == nil {
		row.Verbose = &level
	}
	return row
}
