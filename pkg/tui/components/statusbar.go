package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexwatch/nexwatch/pkg/state"
	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// StatusBarModel displays task summary statistics and the help hint.
type StatusBarModel struct {
	stats     state.Summary
	connected bool
	width     int
}

// NewStatusBarModel creates a new status bar model
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

// Init initializes the status bar model
func (m *StatusBarModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the status bar
func (m *StatusBarModel) Update(msg tea.Msg) (StatusBarModel, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
	}
	return *m, nil
}

// UpdateStats updates the displayed statistics
func (m *StatusBarModel) UpdateStats(stats state.Summary, connected bool) {
	m.stats = stats
	m.connected = connected
}

// View renders the status bar
func (m *StatusBarModel) View() string {
	s := m.stats

	tasks := fmt.Sprintf("Tasks: %d", s.Total)
	running := fmt.Sprintf("Running: %d", s.Running)
	completed := fmt.Sprintf("Done: %d", s.Completed)

	// Failures in red when present
	var failed string
	if s.Failed > 0 {
		failed = styles.StatusBarErrorStyle.Render(fmt.Sprintf("Failed: %d", s.Failed))
	} else {
		failed = styles.SystemRunningStyle.Render("Failed: 0")
	}

	var push string
	if m.connected {
		push = styles.ConnOnlineStyle.Render("Push: live")
	} else {
		push = styles.ConnOfflineStyle.Render("Push: down")
	}

	help := styles.StatusBarHelpStyle.Render("Press ? for help")

	left := fmt.Sprintf(" %s | %s | %s | %s | %s",
		tasks, running, completed, failed, push)

	// Right-align the help hint
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(help)
	padding := m.width - leftWidth - rightWidth - 2
	if padding < 1 {
		padding = 1
	}

	spacer := lipgloss.NewStyle().Width(padding).Render("")

	return styles.StatusBarStyle.Render(left + spacer + help + " ")
}

// SetWidth updates the status bar width
func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}
