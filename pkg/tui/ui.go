// Package tui is the interactive display layer. A single bubbletea update
// loop is the only writer of client state: push events, poll completions,
// and user commands all arrive as messages, so store mutations are never
// concurrent with each other.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/nexwatch/nexwatch/pkg/client"
	"github.com/nexwatch/nexwatch/pkg/config"
	"github.com/nexwatch/nexwatch/pkg/dispatch"
	"github.com/nexwatch/nexwatch/pkg/push"
	"github.com/nexwatch/nexwatch/pkg/state"
	"github.com/nexwatch/nexwatch/pkg/tui/components"
	"github.com/nexwatch/nexwatch/pkg/tui/styles"
)

// Focus tracks which component has focus
type Focus int

const (
	FocusTasks Focus = iota
	FocusLogs
)

// Manager owns the TUI lifecycle: it wires the store, the API client, the
// push manager, and the dispatcher into the bubbletea program.
type Manager struct {
	program     *tea.Program
	model       *RootModel
	store       *state.Store
	client      *client.Client
	pushMgr     *push.Manager
	logCh       chan LogEntryMsg
	doneChan    chan struct{}
	originalOut io.Writer
}

// RootModel is the main bubbletea model
type RootModel struct {
	// Components
	header    components.HeaderModel
	status    components.StatusModel
	tasks     components.TasksModel
	logs      components.LogsModel
	statusBar components.StatusBarModel
	help      components.HelpModel
	submit    components.SubmitModel

	// State
	store      *state.Store
	client     *client.Client
	dispatcher *dispatch.Dispatcher
	focus      Focus
	quitting   bool

	// Poll configuration
	pollInterval time.Duration
	logLimit     int

	// In-flight fetch guards, one per resource
	statusInflight bool
	tasksInflight  bool
	logsInflight   bool

	// Dimensions
	width       int
	height      int
	tasksHeight int
	logsHeight  int

	// Channels for async updates
	pushCh <-chan push.Event
	logCh  <-chan LogEntryMsg
	stopCh <-chan struct{}
}

// NewManager builds the TUI from a normalized configuration.
func NewManager(cfg config.Config, version string) *Manager {
	styles.SetDarkTheme(!cfg.LightTheme)

	store := state.NewStore(cfg.LogCapacity)
	apiClient := client.New(cfg.ServerURL)
	pushMgr := push.NewManager(cfg.PushURL, push.WithReconnect(cfg.Reconnect))
	logCh := make(chan LogEntryMsg, 100)

	m := &Manager{
		store:    store,
		client:   apiClient,
		pushMgr:  pushMgr,
		logCh:    logCh,
		doneChan: make(chan struct{}),
	}

	m.model = &RootModel{
		header:       components.NewHeaderModel(version, cfg.ServerURL),
		status:       components.NewStatusModel(),
		tasks:        components.NewTasksModel(store),
		logs:         components.NewLogsModel(),
		statusBar:    components.NewStatusBarModel(),
		help:         components.NewHelpModel(),
		submit:       components.NewSubmitModel(),
		store:        store,
		client:       apiClient,
		dispatcher:   dispatch.New(store),
		focus:        FocusTasks,
		pollInterval: time.Duration(cfg.PollSeconds) * time.Second,
		logLimit:     cfg.LogCapacity,
		pushCh:       pushMgr.Events(),
		logCh:        logCh,
	}

	return m
}

// Run starts the TUI and blocks until it exits. The push connection and all
// timers are scoped to ctx: cancelling it tears everything down.
func (m *Manager) Run(ctx context.Context) error {
	if os.Getenv("TERM") == "" {
		_ = os.Setenv("TERM", "xterm-256color")
	}

	m.model.stopCh = ctx.Done()

	// Capture diagnostics for the logs pane and silence the terminal
	m.originalOut = log.StandardLogger().Out
	log.SetOutput(io.Discard)
	log.AddHook(&tuiLogHook{logCh: m.logCh, stopCh: ctx.Done()})

	m.pushMgr.Start(ctx)

	m.program = tea.NewProgram(
		m.model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Coalesce store-change bursts into single refresh messages
	debounced := debounce.New(100 * time.Millisecond)
	program := m.program
	m.store.SetNotify(func() {
		debounced(func() {
			program.Send(RefreshMsg{})
		})
	})

	_, err := m.program.Run()

	log.SetOutput(m.originalOut)
	close(m.doneChan)

	return err
}

// Stop requests TUI shutdown.
func (m *Manager) Stop() {
	if m.program != nil {
		m.program.Quit()
	}
}

// Done returns a channel that closes when the TUI has exited.
func (m *Manager) Done() <-chan struct{} {
	return m.doneChan
}

// Init starts the listeners, the poll timer, and the cold fetch of all
// three resources.
func (m *RootModel) Init() tea.Cmd {
	return tea.Batch(
		ListenPush(m.pushCh),
		ListenLogs(m.logCh),
		ListenShutdown(m.stopCh),
		PollTick(m.pollInterval),
		m.fetchStatus(),
		m.fetchTasks(),
		m.fetchLogs(),
		SendLog(log.InfoLevel, "nexwatch started. Press ? for help, q to quit."),
	)
}

// Update handles messages
func (m *RootModel) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	// Panic recovery to prevent a crash from leaving the terminal broken
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("TUI Update panic recovered: %v", r)
			model = m
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSizeMsg(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case PushEventMsg:
		return m, m.handlePushEventMsg(msg)
	case PushClosedMsg:
		return m, m.handlePushClosedMsg()
	case PollTickMsg:
		return m, m.handlePollTickMsg()
	case StatusFetchedMsg:
		return m, m.handleStatusFetchedMsg(msg)
	case TasksFetchedMsg:
		return m, m.handleTasksFetchedMsg(msg)
	case LogsFetchedMsg:
		return m, m.handleLogsFetchedMsg(msg)
	case CommandDoneMsg:
		return m, m.handleCommandDoneMsg(msg)
	case LogEntryMsg:
		return m, m.handleLogEntryMsg(msg)
	case components.SubmitTaskMsg:
		return m, m.handleSubmitTaskMsg(msg)
	case RefreshMsg:
		m.refreshFromStore()
		return m, nil
	case ShutdownMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m *RootModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	if m.help.IsVisible() {
		return m.help.View()
	}
	if m.submit.IsVisible() {
		return m.submit.View()
	}

	header := m.header.View()
	statusPanel := m.status.View()

	tasksFocusAccent := " "
	if m.focus == FocusTasks {
		tasksFocusAccent = styles.FocusAccentStyle.Render("▌")
	}
	tasksTitle := tasksFocusAccent + styles.SectionTitleStyle.Render("Tasks")
	tasksContent := lipgloss.NewStyle().
		Height(m.tasksHeight).
		Render(m.tasks.View())

	logsFocusAccent := " "
	if m.focus == FocusLogs {
		logsFocusAccent = styles.FocusAccentStyle.Render("▌")
	}
	logsTitle := logsFocusAccent + styles.SectionTitleStyle.Render("Logs")
	logsContent := lipgloss.NewStyle().
		Height(m.logsHeight).
		Render(m.logs.View())

	statusBar := m.statusBar.View()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		statusPanel,
		tasksTitle,
		tasksContent,
		logsTitle,
		logsContent,
		statusBar,
	)
}

// fetchStatus starts a status fetch unless one is already outstanding.
func (m *RootModel) fetchStatus() tea.Cmd {
	if m.statusInflight {
		return nil
	}
	m.statusInflight = true
	return FetchStatus(m.client)
}

// fetchTasks starts a task list fetch unless one is already outstanding.
func (m *RootModel) fetchTasks() tea.Cmd {
	if m.tasksInflight {
		return nil
	}
	m.tasksInflight = true
	return FetchTasks(m.client)
}

// fetchLogs starts the cold log snapshot fetch. Afterward the push path is
// the only writer of log entries, so this never runs on the poll timer.
func (m *RootModel) fetchLogs() tea.Cmd {
	if m.logsInflight {
		return nil
	}
	m.logsInflight = true
	return FetchLogs(m.client, m.logLimit)
}

// refreshSnapshot re-fetches status and tasks together.
func (m *RootModel) refreshSnapshot() tea.Cmd {
	return tea.Batch(m.fetchStatus(), m.fetchTasks())
}

// refreshFromStore pushes current store contents into the components.
func (m *RootModel) refreshFromStore() {
	status, ok := m.store.Status()
	m.status.SetStatus(status, ok)
	m.tasks.Refresh()
	m.header.SetConnected(m.store.Connected())
	m.statusBar.UpdateStats(m.store.Summary(), m.store.Connected())
}

// handleWindowSizeMsg handles terminal resize events
func (m *RootModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.updateSizes()
	m.header, _ = m.header.Update(msg)
	m.status, _ = m.status.Update(msg)
	m.statusBar, _ = m.statusBar.Update(msg)
	m.help, _ = m.help.Update(msg)
	m.submit, _ = m.submit.Update(msg)
}

// updateSizes recalculates component sizes
func (m *RootModel) updateSizes() {
	headerHeight := 1
	statusPanelHeight := 1
	statusBarHeight := 1

	// Fixed lines: section titles (2) + blank line after header (1)
	fixedLines := 3

	contentWidth := m.width
	if contentWidth < 20 {
		contentWidth = 20
	}

	availableHeight := m.height - headerHeight - statusPanelHeight - statusBarHeight - fixedLines
	if availableHeight < 10 {
		availableHeight = 10
	}

	// Split 2/3 tasks, 1/3 logs
	logsHeight := availableHeight / 3
	tasksHeight := availableHeight - logsHeight

	if tasksHeight < 6 {
		tasksHeight = 6
	}
	if logsHeight < 3 {
		logsHeight = 3
	}

	m.tasksHeight = tasksHeight
	m.logsHeight = logsHeight

	m.tasks.SetSize(contentWidth, tasksHeight)
	m.logs.SetSize(contentWidth, logsHeight)
	m.statusBar.SetWidth(m.width)
	m.submit.SetSize(m.width, m.height)
}

// handleKeyMsg handles keyboard input
func (m *RootModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Submit modal captures all input when visible
	if m.submit.IsVisible() {
		var cmd tea.Cmd
		m.submit, cmd = m.submit.Update(msg)
		return m, cmd
	}

	// Help modal captures all input when visible
	if m.help.IsVisible() {
		m.help, _ = m.help.Update(msg)
		return m, nil
	}

	if result, cmd, handled := m.handleGlobalKeys(msg); handled {
		return result, cmd
	}

	return m.handleFocusedComponentKey(msg)
}

// handleGlobalKeys handles global keyboard shortcuts
func (m *RootModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit, true
	case "?":
		m.help.Toggle()
		return m, nil, true
	case "tab":
		m.cycleFocus()
		return m, nil, true
	case "n":
		m.submit.SetSize(m.width, m.height)
		return m, m.submit.Show(), true
	case "s":
		return m, tea.Batch(
			SendLog(log.InfoLevel, "Starting system..."),
			RunStart(m.client),
		), true
	case "x":
		return m, tea.Batch(
			SendLog(log.InfoLevel, "Stopping system..."),
			RunStop(m.client),
		), true
	case "r":
		return m, tea.Batch(
			SendLog(log.DebugLevel, "Manual refresh"),
			m.refreshSnapshot(),
		), true
	}
	return nil, nil, false
}

// handleFocusedComponentKey routes a key to the focused component
func (m *RootModel) handleFocusedComponentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case FocusLogs:
		m.logs, cmd = m.logs.Update(msg)
	}
	return m, cmd
}

// cycleFocus switches focus between the tasks table and the logs pane
func (m *RootModel) cycleFocus() {
	switch m.focus {
	case FocusTasks:
		m.focus = FocusLogs
		m.tasks.SetFocus(false)
		m.logs.SetFocus(true)
	case FocusLogs:
		m.focus = FocusTasks
		m.tasks.SetFocus(true)
		m.logs.SetFocus(false)
	}
}

// handlePushEventMsg applies one push event and re-arms the listener.
func (m *RootModel) handlePushEventMsg(msg PushEventMsg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Event.Kind {
	case push.EventUp:
		m.store.SetConnected(true)
		// The channel was down for some window; reconverge on poll state
		cmds = append(cmds,
			SendLog(log.InfoLevel, "Push channel connected"),
			m.refreshSnapshot(),
		)

	case push.EventDown:
		m.store.SetConnected(false)
		cmds = append(cmds, SendLog(log.WarnLevel, "Push channel lost, reconnecting..."))

	case push.EventFrame:
		result := m.dispatcher.Dispatch(msg.Event.Frame)
		if result.Entry != nil {
			m.logs.AppendRemote(*result.Entry)
		}
		if result.Action == dispatch.ActionRefresh {
			cmds = append(cmds, m.refreshSnapshot())
		}
	}

	m.refreshFromStore()
	cmds = append(cmds, ListenPush(m.pushCh))
	return tea.Batch(cmds...)
}

// handlePushClosedMsg handles the push stream ending without reconnection.
func (m *RootModel) handlePushClosedMsg() tea.Cmd {
	m.store.SetConnected(false)
	m.refreshFromStore()
	if m.quitting {
		return nil
	}
	return SendLog(log.WarnLevel, "Push channel closed; polling continues")
}

// handlePollTickMsg fires the periodic full-state poll.
func (m *RootModel) handlePollTickMsg() tea.Cmd {
	if m.quitting {
		return nil
	}
	return tea.Batch(
		m.refreshSnapshot(),
		PollTick(m.pollInterval),
	)
}

// handleStatusFetchedMsg adopts a status snapshot.
func (m *RootModel) handleStatusFetchedMsg(msg StatusFetchedMsg) tea.Cmd {
	m.statusInflight = false
	if m.quitting {
		// Late response after teardown is discarded
		return nil
	}
	if msg.Err != nil {
		return SendLog(log.WarnLevel, fmt.Sprintf("Status fetch failed: %v", msg.Err))
	}
	m.store.ReplaceStatus(msg.Status)
	m.refreshFromStore()
	return nil
}

// handleTasksFetchedMsg adopts a task list snapshot.
func (m *RootModel) handleTasksFetchedMsg(msg TasksFetchedMsg) tea.Cmd {
	m.tasksInflight = false
	if m.quitting {
		return nil
	}
	if msg.Err != nil {
		return SendLog(log.WarnLevel, fmt.Sprintf("Task fetch failed: %v", msg.Err))
	}
	m.store.ReplaceTasks(msg.Tasks)
	m.refreshFromStore()
	return nil
}

// handleLogsFetchedMsg seeds the log buffer from the cold fetch.
func (m *RootModel) handleLogsFetchedMsg(msg LogsFetchedMsg) tea.Cmd {
	m.logsInflight = false
	if m.quitting {
		return nil
	}
	if msg.Err != nil {
		return SendLog(log.WarnLevel, fmt.Sprintf("Log fetch failed: %v", msg.Err))
	}
	m.store.ReplaceLogs(msg.Logs)
	m.logs.SetRemote(msg.Logs)
	return nil
}

// handleCommandDoneMsg reports a control command result and reconverges.
// The refresh runs on success and failure alike; displayed state always
// returns to the remote truth.
func (m *RootModel) handleCommandDoneMsg(msg CommandDoneMsg) tea.Cmd {
	if m.quitting {
		return nil
	}

	var logCmd tea.Cmd
	if msg.Err != nil {
		logCmd = SendLog(log.ErrorLevel, fmt.Sprintf("Command %s failed: %v", msg.Op, msg.Err))
	} else {
		logCmd = SendLog(log.InfoLevel, fmt.Sprintf("Command %s sent", msg.Op))
	}

	return tea.Batch(logCmd, m.refreshSnapshot())
}

// handleLogEntryMsg appends a local diagnostic line.
func (m *RootModel) handleLogEntryMsg(msg LogEntryMsg) tea.Cmd {
	m.logs.AppendLocal(msg.Level, msg.Message, msg.Time)
	return ListenLogs(m.logCh)
}

// handleSubmitTaskMsg runs a confirmed task submission.
func (m *RootModel) handleSubmitTaskMsg(msg components.SubmitTaskMsg) tea.Cmd {
	return tea.Batch(
		SendLog(log.InfoLevel, fmt.Sprintf("Submitting task: %s (%s)", msg.Description, msg.Mode)),
		RunSubmit(m.client, msg.Description, msg.Mode),
	)
}

// tuiLogHook is a logrus hook that forwards diagnostics to the TUI
type tuiLogHook struct {
	logCh  chan<- LogEntryMsg
	stopCh <-chan struct{}
}

func (h *tuiLogHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *tuiLogHook) Fire(entry *log.Entry) error {
	select {
	case h.logCh <- LogEntryMsg{
		Level:   entry.Level,
		Message: entry.Message,
		Time:    entry.Time,
	}:
	default:
		// Buffer full - silently drop during shutdown
		select {
		case <-h.stopCh:
		default:
		}
	}
	return nil
}
