package tui

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexwatch/nexwatch/pkg/push"
	"github.com/nexwatch/nexwatch/pkg/state"
)

// PushEventMsg wraps a push channel event for the TUI
type PushEventMsg struct {
	Event push.Event
}

// PushClosedMsg signals that the push event stream ended for good
type PushClosedMsg struct{}

// PollTickMsg fires on the poll timer
type PollTickMsg struct {
	Time time.Time
}

// StatusFetchedMsg carries a completed status fetch
type StatusFetchedMsg struct {
	Status state.SystemStatus
	Err    error
}

// TasksFetchedMsg carries a completed task list fetch
type TasksFetchedMsg struct {
	Tasks []state.Task
	Err   error
}

// LogsFetchedMsg carries a completed log snapshot fetch
type LogsFetchedMsg struct {
	Logs []state.LogEntry
	Err  error
}

// CommandDoneMsg reports a fire-and-forget control command completion
type CommandDoneMsg struct {
	Op  string
	Err error
}

// LogEntryMsg represents a local diagnostic line to display
type LogEntryMsg struct {
	Level   logrus.Level
	Message string
	Time    time.Time
}

// RefreshMsg triggers a UI refresh from the store
type RefreshMsg struct{}

// ShutdownMsg signals the TUI to shut down
type ShutdownMsg struct{}
