package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsmctl/hsmctl/internal/provisioning"
)

// sender is the subset of tea.Program the observer needs.
type sender interface {
	Send(msg tea.Msg)
}

// Observer forwards provisioning events into a running Bubble Tea program.
// It satisfies provisioning.Observer so the workflow stays unaware of the
// UI it is reporting to.
type Observer struct {
	p sender
}

// NewObserver creates an observer bound to a program.
func NewObserver(p sender) *Observer {
	return &Observer{p: p}
}

// Printf implements the Logger interface.
func (o *Observer) Printf(format string, v ...interface{}) {
	o.p.Send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements the Observer interface.
func (o *Observer) Event(event provisioning.Event) {
	o.p.Send(EventMsg{Event: event})
}

// Progress implements the Observer interface.
func (o *Observer) Progress(phase string, current, total int) {
	o.p.Send(LogMsg{Line: fmt.Sprintf("[%s] %d/%d", phase, current, total)})
}
