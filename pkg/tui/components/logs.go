package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/nexwatch/nexwatch/pkg/state"
	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// maxLogLines caps the display list. The canonical remote buffer lives in
// the state store; this list also carries local diagnostics, so it is larger.
const maxLogLines = 1000

// logLine is one display entry, either a backend log or a local diagnostic.
type logLine struct {
	stamp   string
	level   string
	message string
}

// LogsModel displays scrollable log output: the backend log stream plus the
// watcher's own diagnostics, interleaved in arrival order.
type LogsModel struct {
	viewport viewport.Model
	lines    []logLine
	width    int
	height   int
	focused  bool
	ready    bool
}

// NewLogsModel creates a new logs model
func NewLogsModel() LogsModel {
	return LogsModel{
		lines: make([]logLine, 0, maxLogLines),
	}
}

// Init initializes the logs model
func (m LogsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the logs viewport
func (m LogsModel) Update(msg tea.Msg) (LogsModel, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok && m.focused {
		switch key.String() {
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "g", "home":
			m.viewport.GotoTop()
		case "G", "end":
			m.viewport.GotoBottom()
		case "pgdown":
			m.viewport.HalfViewDown()
		case "pgup":
			m.viewport.HalfViewUp()
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// SetRemote seeds the display from a cold-fetch snapshot, replacing any
// previously shown backend entries.
func (m *LogsModel) SetRemote(entries []state.LogEntry) {
	m.lines = m.lines[:0]
	for _, e := range entries {
		m.lines = append(m.lines, logLine{
			stamp:   e.Timestamp,
			level:   string(e.Level),
			message: e.Message,
		})
	}
	m.trim()
	m.updateContent()
	if m.ready {
		m.viewport.GotoBottom()
	}
}

// AppendRemote adds one backend log entry from the push path.
func (m *LogsModel) AppendRemote(entry state.LogEntry) {
	m.append(logLine{
		stamp:   entry.Timestamp,
		level:   string(entry.Level),
		message: entry.Message,
	})
}

// AppendLocal adds a watcher diagnostic line.
func (m *LogsModel) AppendLocal(level logrus.Level, message string, t time.Time) {
	var lvl string
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		lvl = "error"
	case logrus.WarnLevel:
		lvl = "warning"
	case logrus.DebugLevel, logrus.TraceLevel:
		lvl = "debug"
	default:
		lvl = "info"
	}
	m.append(logLine{
		stamp:   t.Format(time.RFC3339),
		level:   lvl,
		message: message,
	})
}

func (m *LogsModel) append(line logLine) {
	m.lines = append(m.lines, line)
	m.trim()
	m.updateContent()

	// Auto-scroll to bottom
	if m.ready {
		m.viewport.GotoBottom()
	}
}

func (m *LogsModel) trim() {
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
}

// Len returns the number of displayed lines.
func (m *LogsModel) Len() int {
	return len(m.lines)
}

// updateContent rebuilds the viewport content from the display list
func (m *LogsModel) updateContent() {
	if !m.ready {
		return
	}

	var sb strings.Builder
	for _, line := range m.lines {
		sb.WriteString(m.formatLine(line))
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
}

// formatLine renders one entry with colors
func (m *LogsModel) formatLine(line logLine) string {
	timestamp := styles.LogTimestampStyle.Render("[" + compactStamp(line.stamp) + "]")

	message := strings.TrimRight(line.message, "\n\r")

	var levelStyle lipgloss.Style
	var levelStr string
	switch line.level {
	case "error":
		levelStyle = styles.LogErrorStyle
		levelStr = "ERROR"
	case "warning":
		levelStyle = styles.LogWarnStyle
		levelStr = "WARN"
	case "debug":
		levelStyle = styles.LogDebugStyle
		levelStr = "DEBUG"
	default:
		levelStyle = styles.LogInfoStyle
		levelStr = "INFO"
	}

	level := levelStyle.Render(fmt.Sprintf("[%s]", levelStr))
	return fmt.Sprintf("%s%s %s", timestamp, level, message)
}

// compactStamp reduces a timestamp to its time-of-day portion when it parses
// as RFC 3339; otherwise the raw string is shown.
func compactStamp(stamp string) string {
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		return t.Local().Format("15:04:05")
	}
	if stamp == "" {
		return "--:--:--"
	}
	return stamp
}

// View renders the logs viewport (no border - parent handles that)
func (m LogsModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View()
}

// SetFocus sets the focus state
func (m *LogsModel) SetFocus(focused bool) {
	m.focused = focused
}

// SetSize updates the viewport dimensions
func (m *LogsModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.viewport.Style = lipgloss.NewStyle()
		m.viewport.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.updateContent()
}
