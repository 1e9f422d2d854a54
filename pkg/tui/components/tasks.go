package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/nexwatch/nexwatch/pkg/state"
	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// Column keys
const (
	colKeyID        = "id"
	colKeyName      = "name"
	colKeyStatus    = "status"
	colKeyCreated   = "created"
	colKeyCompleted = "completed"
)

// TasksModel displays the task table, newest first as the backend orders it.
type TasksModel struct {
	table   table.Model
	store   *state.Store
	width   int
	height  int
	focused bool
}

// NewTasksModel creates a new tasks model
func NewTasksModel(store *state.Store) TasksModel {
	columns := []table.Column{
		table.NewColumn(colKeyID, "ID", 6),
		table.NewFlexColumn(colKeyName, "Task", 3),
		table.NewColumn(colKeyStatus, "Status", 12),
		table.NewColumn(colKeyCreated, "Created", 20),
		table.NewColumn(colKeyCompleted, "Completed", 20),
	}

	m := TasksModel{
		store:   store,
		focused: true,
	}

	m.table = table.New(columns).
		WithBaseStyle(lipgloss.NewStyle().Padding(0, 1)).
		BorderRounded().
		HeaderStyle(styles.TableHeaderStyle).
		HighlightStyle(styles.TableSelectedStyle).
		Focused(true).
		WithPageSize(20).
		WithFooterVisibility(false)

	return m
}

// Init initializes the tasks model
func (m *TasksModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the tasks table
func (m *TasksModel) Update(msg tea.Msg) (TasksModel, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok && m.focused {
		switch key.String() {
		case "g", "home":
			m.table = m.table.PageFirst()
			return *m, nil
		case "G", "end":
			m.table = m.table.PageLast()
			return *m, nil
		case "pgdown":
			m.table = m.table.PageDown()
			return *m, nil
		case "pgup":
			m.table = m.table.PageUp()
			return *m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return *m, cmd
}

// Refresh rebuilds the rows from the store snapshot
func (m *TasksModel) Refresh() {
	tasks := m.store.Tasks()
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		rows[i] = table.NewRow(table.RowData{
			colKeyID:        fmt.Sprintf("%d", t.ID),
			colKeyName:      t.Name,
			colKeyStatus:    statusCell(t.Status),
			colKeyCreated:   formatStamp(t.CreatedAt),
			colKeyCompleted: formatStamp(t.CompletedAt),
		})
	}
	m.table = m.table.WithRows(rows)
}

// statusCell styles the task status by lifecycle state
func statusCell(s state.TaskStatus) table.StyledCell {
	switch s {
	case state.TaskCompleted:
		return table.NewStyledCell(string(s), styles.TaskCompletedStyle)
	case state.TaskFailed:
		return table.NewStyledCell(string(s), styles.TaskFailedStyle)
	default:
		return table.NewStyledCell(string(s), styles.TaskRunningStyle)
	}
}

// formatStamp compacts an RFC 3339 timestamp for display; anything else is
// shown as-is since the backend emits heterogeneous formats.
func formatStamp(stamp string) string {
	if stamp == "" {
		return "-"
	}
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		return t.Local().Format("2006-01-02 15:04:05")
	}
	return strings.Replace(stamp, "T", " ", 1)
}

// View renders the tasks table
func (m *TasksModel) View() string {
	if m.store.TaskCount() == 0 {
		return " " + styles.StatusLabelStyle.Render("No tasks yet. Press n to submit one.")
	}
	return m.table.View()
}

// SetFocus sets the focus state
func (m *TasksModel) SetFocus(focused bool) {
	m.focused = focused
	m.table = m.table.Focused(focused)
}

// SetSize updates the table dimensions
func (m *TasksModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	pageSize := height - 4 // header and border rows
	if pageSize < 3 {
		pageSize = 3
	}
	m.table = m.table.WithTargetWidth(width).WithPageSize(pageSize)
}
