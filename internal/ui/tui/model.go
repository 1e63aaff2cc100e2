package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsmctl/hsmctl/internal/provisioning"
)

// maxActivityLines bounds the scrollback of resource events shown below
// the phase list.
const maxActivityLines = 8

// PhaseRow represents one provisioning phase for display.
type PhaseRow struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Err    error
}

// Model is the Bubble Tea model for the provisioning dashboard.
type Model struct {
	// Cluster info
	ClusterName string
	Region      string

	// Provisioning phases
	Phases []PhaseRow

	// Waiting holds the current convergence target, e.g.
	// "cluster-abc123: waiting for state UNINITIALIZED".
	Waiting string

	// Activity is the tail of recent resource events.
	Activity []string

	StartTime time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool

	// Mode
	Mode string // "apply", "destroy"
}

// NewApplyModel creates a model for the apply command TUI.
func NewApplyModel(clusterName, region string) Model {
	return Model{
		ClusterName: clusterName,
		Region:      region,
		StartTime:   time.Now(),
		Mode:        "apply",
		Phases: []PhaseRow{
			{Name: "Network", Key: "network"},
			{Name: "Cluster", Key: "cluster"},
			{Name: "Activation", Key: "activation"},
		},
	}
}

// NewDestroyModel creates a model for the destroy command TUI.
func NewDestroyModel(clusterName, region string) Model {
	return Model{
		ClusterName: clusterName,
		Region:      region,
		StartTime:   time.Now(),
		Mode:        "destroy",
		Phases: []PhaseRow{
			{Name: "Destroy", Key: "destroy"},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case EventMsg:
		m.applyEvent(msg.Event)

	case LogMsg:
		m.appendActivity(msg.Line)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyEvent(e provisioning.Event) {
	switch e.Type {
	case provisioning.EventPhaseStarted:
		m.setPhaseActive(e.Phase)
	case provisioning.EventPhaseCompleted:
		m.setPhaseDone(e.Phase, nil)
		m.Waiting = ""
	case provisioning.EventPhaseFailed:
		m.setPhaseDone(e.Phase, phaseError(e))
	case provisioning.EventConverging:
		m.Waiting = e.Resource + ": " + e.Message
	case provisioning.EventConverged:
		m.Waiting = ""
		m.appendActivity(e.Resource + " " + e.Message)
	default:
		line := e.Message
		if e.Resource != "" {
			line = e.Resource + ": " + line
		}
		m.appendActivity(line)
	}
}

func (m *Model) setPhaseActive(key string) {
	for i := range m.Phases {
		if m.Phases[i].Key == key {
			m.Phases[i].Active = true
		}
	}
}

func (m *Model) setPhaseDone(key string, err error) {
	for i := range m.Phases {
		if m.Phases[i].Key == key {
			m.Phases[i].Active = false
			m.Phases[i].Done = err == nil
			m.Phases[i].Err = err
		}
	}
}

// phaseError turns a failure event into an error for the phase row. The
// event message already carries the wrapped failure text.
func phaseError(e provisioning.Event) error {
	return errors.New(e.Message)
}

func (m *Model) appendActivity(line string) {
	m.Activity = append(m.Activity, line)
	if len(m.Activity) > maxActivityLines {
		m.Activity = m.Activity[len(m.Activity)-maxActivityLines:]
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
