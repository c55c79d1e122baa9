package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBridgeUnboundConfirmDeclines(t *testing.T) {
	b := NewBridge()
	if b.Confirm("Reset session", "sure?", "Reset") {
		t.Fatal("unbound bridge must decline")
	}
	b.Send(ReportMsg{Title: "ignored"})
}

func TestBridgeConfirmRoundTrip(t *testing.T) {
	b := NewBridge()
	var seen ConfirmRequestMsg
	b.Bind(func(msg tea.Msg) {
		cm, ok := msg.(ConfirmRequestMsg)
		if !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		seen = cm
		cm.resp <- true
	})
	if !b.Confirm("Delete session", "sure?", "Delete") {
		t.Fatal("expected accepted confirmation")
	}
	if seen.Title != "Delete session" || seen.ActionLabel != "Delete" {
		t.Fatalf("unexpected request %+v", seen)
	}
}

func TestBridgeReportError(t *testing.T) {
	b := NewBridge()
	var got ReportMsg
	b.Bind(func(msg tea.Msg) {
		if rm, ok := msg.(ReportMsg); ok {
			got = rm
		}
	})
	wantErr := errors.New("boom")
	b.ReportError("Compact failed", wantErr)
	if got.Title != "Compact failed" || !errors.Is(got.Err, wantErr) {
		t.Fatalf("unexpected report %+v", got)
	}
}
