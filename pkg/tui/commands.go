package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nexwatch/nexwatch/pkg/client"
	"github.com/nexwatch/nexwatch/pkg/push"
)

// ListenPush creates a command that waits for the next push event
func ListenPush(ch <-chan push.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return PushClosedMsg{}
		}
		return PushEventMsg{Event: event}
	}
}

// ListenLogs creates a command that waits for the next diagnostic line
func ListenLogs(logCh <-chan LogEntryMsg) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-logCh
		if !ok {
			return nil
		}
		return entry
	}
}

// ListenShutdown creates a command that waits for the shutdown signal
func ListenShutdown(stopCh <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-stopCh
		return ShutdownMsg{}
	}
}

// PollTick schedules the next poll timer tick
func PollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollTickMsg{Time: t}
	})
}

// SendLog creates a diagnostic line message
func SendLog(level logrus.Level, message string) tea.Cmd {
	return func() tea.Msg {
		return LogEntryMsg{
			Level:   level,
			Message: message,
			Time:    time.Now(),
		}
	}
}

// FetchStatus runs a status fetch off the update loop
func FetchStatus(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		status, err := c.FetchStatus(context.Background())
		return StatusFetchedMsg{Status: status, Err: err}
	}
}

// FetchTasks runs a task list fetch off the update loop
func FetchTasks(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		tasks, err := c.FetchTasks(context.Background())
		return TasksFetchedMsg{Tasks: tasks, Err: err}
	}
}

// FetchLogs runs a log snapshot fetch off the update loop
func FetchLogs(c *client.Client, limit int) tea.Cmd {
	return func() tea.Msg {
		logs, err := c.FetchLogs(context.Background(), limit)
		return LogsFetchedMsg{Logs: logs, Err: err}
	}
}

// RunStart sends the start command
func RunStart(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		return CommandDoneMsg{Op: "start", Err: c.Start(context.Background())}
	}
}

// RunStop sends the stop command
func RunStop(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		return CommandDoneMsg{Op: "stop", Err: c.Stop(context.Background())}
	}
}

// RunSubmit sends a task submission
func RunSubmit(c *client.Client, description, mode string) tea.Cmd {
	return func() tea.Msg {
		return CommandDoneMsg{Op: "submit task", Err: c.SubmitTask(context.Background(), description, mode)}
	}
}
