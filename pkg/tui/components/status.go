package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexwatch/nexwatch/pkg/state"
	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// StatusModel displays the latest system status snapshot.
type StatusModel struct {
	status    state.SystemStatus
	hasStatus bool
	width     int
}

// NewStatusModel creates a new status panel model
func NewStatusModel() StatusModel {
	return StatusModel{}
}

// Init initializes the status model
func (m *StatusModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the status panel
func (m *StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
	}
	return *m, nil
}

// SetStatus adopts the latest snapshot
func (m *StatusModel) SetStatus(status state.SystemStatus, ok bool) {
	m.status = status
	m.hasStatus = ok
}

// View renders the status panel as a single line
func (m *StatusModel) View() string {
	if !m.hasStatus {
		return " " + styles.StatusLabelStyle.Render("Waiting for first status snapshot...")
	}

	s := m.status

	sysState := styles.SystemStoppedStyle.Render("stopped")
	if s.Running() {
		sysState = styles.SystemRunningStyle.Render("running")
	}

	line := fmt.Sprintf(" %s %s  %s %s  %s %s  %s %s",
		styles.StatusLabelStyle.Render("System:"),
		sysState,
		styles.StatusLabelStyle.Render("Uptime:"),
		styles.StatusValueStyle.Render(humanUptime(s.Uptime)),
		styles.StatusLabelStyle.Render("Agents:"),
		styles.StatusValueStyle.Render(fmt.Sprintf("%d", s.ActiveAgents)),
		styles.StatusLabelStyle.Render("Completed:"),
		styles.StatusValueStyle.Render(fmt.Sprintf("%d", s.TasksCompleted)),
	)

	if s.CurrentTask != "" {
		line += fmt.Sprintf("  %s %s",
			styles.StatusLabelStyle.Render("Current:"),
			styles.StatusValueStyle.Render(s.CurrentTask))
	}

	return line
}

// SetWidth updates the panel width
func (m *StatusModel) SetWidth(width int) {
	m.width = width
}

// humanUptime renders a second count like 1h02m03s, dropping zero leading
// units.
func humanUptime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)

	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, min, sec)
	case min > 0:
		return fmt.Sprintf("%dm%02ds", min, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}
