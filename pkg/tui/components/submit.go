package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexwatch/nexwatch/pkg/client"
	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// SubmitTaskMsg is sent when the user confirms a task submission.
type SubmitTaskMsg struct {
	Description string
	Mode        string
}

// SubmitModel is the new-task modal: a description input plus an execution
// mode selector cycled with tab.
type SubmitModel struct {
	input   textinput.Model
	modeIdx int
	errText string
	visible bool
	width   int
	height  int
}

// NewSubmitModel creates a new submit modal model
func NewSubmitModel() SubmitModel {
	input := textinput.New()
	input.Placeholder = "describe the task"
	input.CharLimit = 200
	input.Width = 50

	return SubmitModel{
		input: input,
	}
}

// Init initializes the submit model
func (m *SubmitModel) Init() tea.Cmd {
	return nil
}

// Show opens the modal with a cleared input
func (m *SubmitModel) Show() tea.Cmd {
	m.visible = true
	m.errText = ""
	m.modeIdx = 0
	m.input.SetValue("")
	return m.input.Focus()
}

// Hide closes the modal
func (m *SubmitModel) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is open
func (m *SubmitModel) IsVisible() bool {
	return m.visible
}

// Mode returns the currently selected execution mode
func (m *SubmitModel) Mode() string {
	return client.Modes[m.modeIdx]
}

// Update handles messages for the submit modal
func (m *SubmitModel) Update(msg tea.Msg) (SubmitModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return *m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.Hide()
			return *m, nil
		case "tab":
			m.modeIdx = (m.modeIdx + 1) % len(client.Modes)
			return *m, nil
		case "shift+tab":
			m.modeIdx = (m.modeIdx - 1 + len(client.Modes)) % len(client.Modes)
			return *m, nil
		case "enter":
			description := strings.TrimSpace(m.input.Value())
			if description == "" {
				// Blocked before any network I/O
				m.errText = "task description must not be empty"
				return *m, nil
			}
			mode := m.Mode()
			m.Hide()
			return *m, func() tea.Msg {
				return SubmitTaskMsg{Description: description, Mode: mode}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return *m, cmd
}

// View renders the submit modal centered on screen
func (m *SubmitModel) View() string {
	if !m.visible {
		return ""
	}

	var lines []string
	lines = append(lines, styles.SubmitTitleStyle.Render("New Task"))
	lines = append(lines, "")
	lines = append(lines, m.input.View())
	lines = append(lines, "")

	// Mode selector with the active mode highlighted
	var modes []string
	for i, mode := range client.Modes {
		if i == m.modeIdx {
			modes = append(modes, styles.SubmitModeStyle.Render("["+mode+"]"))
		} else {
			modes = append(modes, styles.SubmitLabelStyle.Render(" "+mode+" "))
		}
	}
	lines = append(lines, styles.SubmitLabelStyle.Render("Mode: ")+strings.Join(modes, " "))

	if m.errText != "" {
		lines = append(lines, "")
		lines = append(lines, styles.SubmitErrorStyle.Render(m.errText))
	}

	lines = append(lines, "")
	lines = append(lines, styles.SubmitLabelStyle.Render("enter: submit  tab: cycle mode  esc: cancel"))

	modal := styles.SubmitModalStyle.Render(strings.Join(lines, "\n"))
	return centerOverlay(modal, m.width, m.height)
}

// SetSize updates the modal dimensions
func (m *SubmitModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// centerOverlay positions a rendered block in the middle of the screen.
func centerOverlay(block string, width, height int) string {
	blockWidth := lipgloss.Width(block)
	blockHeight := lipgloss.Height(block)

	horizontalPadding := (width - blockWidth) / 2
	verticalPadding := (height - blockHeight) / 2

	if horizontalPadding < 0 {
		horizontalPadding = 0
	}
	if verticalPadding < 0 {
		verticalPadding = 0
	}

	var sb strings.Builder
	for i := 0; i < verticalPadding; i++ {
		sb.WriteString("\n")
	}

	leftPad := lipgloss.NewStyle().Width(horizontalPadding).Render("")
	for _, line := range strings.Split(block, "\n") {
		sb.WriteString(leftPad + line + "\n")
	}

	return sb.String()
}
