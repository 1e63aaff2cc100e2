package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsmctl/hsmctl/internal/provisioning"
)

// Run wraps a provisioning workflow with the dashboard. The workflow runs
// in a background goroutine and reports through the observer handed to it;
// the TUI owns the terminal until the workflow finishes or the user quits.
func Run(m Model, workflow func(obs provisioning.Observer) error) error {
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		if err := workflow(NewObserver(p)); err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}
