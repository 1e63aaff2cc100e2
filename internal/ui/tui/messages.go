// Package tui provides a Bubble Tea-based terminal UI for cluster provisioning.
package tui

import "github.com/hsmctl/hsmctl/internal/provisioning"

// EventMsg carries a provisioning event into the TUI.
type EventMsg struct {
	Event provisioning.Event
}

// LogMsg carries a plain log line from the provisioning workflow.
type LogMsg struct {
	Line string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
