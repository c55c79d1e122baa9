package ui

import (
	"sync"

	"github.com/thecoder93/openclaw/internal/plan"
	tea "github.com/charmbracelet/bubbletea"
)

// PlanMsg delivers a freshly computed presentation plan to the model.
type PlanMsg struct {
	Plan plan.Plan
}

// ReportMsg surfaces an action failure on the status line.
type ReportMsg struct {
	Title string
	Err   error
}

// ConfirmRequestMsg asks the user a yes/no question. The requesting goroutine
// blocks on resp until a key decides the outcome.
type ConfirmRequestMsg struct {
	Title       string
	Message     string
	ActionLabel string
	resp        chan bool
}

// Bridge routes events from background goroutines into the Bubble Tea update
// loop. It is handed to callers before the program exists; Bind attaches the
// program's Send once it is running. Messages sent before Bind are dropped.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Bind attaches the running program's Send function.
func (b *Bridge) Bind(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

// Send forwards a message into the update loop.
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Confirm blocks until the user answers the confirmation prompt. Called from
// action goroutines, never from the update loop itself.
func (b *Bridge) Confirm(title, message, actionLabel string) bool {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return false
	}
	resp := make(chan bool, 1)
	send(ConfirmRequestMsg{Title: title, Message: message, ActionLabel: actionLabel, resp: resp})
	return <-resp
}

// ReportError publishes an action failure to the status line.
func (b *Bridge) ReportError(title string, err error) {
	b.Send(ReportMsg{Title: title, Err: err})
}
