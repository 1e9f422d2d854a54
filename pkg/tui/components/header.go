package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// HeaderModel displays the application header with title, version, and the
// backend address plus connection state.
type HeaderModel struct {
	version   string
	serverURL string
	connected bool
	width     int
}

// NewHeaderModel creates a new header model
func NewHeaderModel(version, serverURL string) HeaderModel {
	return HeaderModel{
		version:   version,
		serverURL: serverURL,
	}
}

// Init initializes the header model
func (m *HeaderModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the header
func (m *HeaderModel) Update(msg tea.Msg) (HeaderModel, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
	}
	return *m, nil
}

// SetConnected updates the push channel indicator
func (m *HeaderModel) SetConnected(connected bool) {
	m.connected = connected
}

// View renders the header
func (m *HeaderModel) View() string {
	title := styles.HeaderTitleStyle.Render("nexwatch")
	version := styles.HeaderVersionStyle.Render(" v" + m.version)
	server := styles.HeaderServerStyle.Render(m.serverURL)

	leftPart := fmt.Sprintf(" %s%s | %s", title, version, server)

	conn := styles.ConnOfflineStyle.Render("● offline")
	if m.connected {
		conn = styles.ConnOnlineStyle.Render("● live")
	}
	hint := styles.HeaderHintStyle.Render("[n: new task]")
	rightPart := hint + " " + conn

	// Calculate spacing to push the indicator to the right
	leftWidth := lipgloss.Width(leftPart)
	rightWidth := lipgloss.Width(rightPart)
	spacing := m.width - leftWidth - rightWidth - 1
	if spacing < 1 {
		spacing = 1
	}

	return leftPart + strings.Repeat(" ", spacing) + rightPart
}

// SetWidth updates the header width
func (m *HeaderModel) SetWidth(width int) {
	m.width = width
}
