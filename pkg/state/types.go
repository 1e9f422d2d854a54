package state

// SystemState is the coarse run state reported by the backend.
type SystemState string

const (
	SystemRunning SystemState = "running"
	SystemStopped SystemState = "stopped"
)

// SystemStatus is the full system snapshot returned by GET /status.
// It is replaced wholesale on every poll, never patched field by field.
type SystemStatus struct {
	Status         SystemState `json:"status"`
	Uptime         float64     `json:"uptime"` // seconds
	ActiveAgents   int         `json:"active_agents"`
	TasksCompleted int         `json:"tasks_completed"`
	CurrentTask    string      `json:"current_task,omitempty"`
}

// Running reports whether the backend considers itself started.
func (s SystemStatus) Running() bool {
	return s.Status == SystemRunning
}

// TaskStatus represents the lifecycle state of a task.
// The only legal transitions are running -> completed and running -> failed.
type TaskStatus string

const (
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Terminal reports whether the status is an end state.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Task is a single backend task. Identity (ID) is immutable; CompletedAt is
// set only once the task leaves the running state.
//
// Timestamps stay as strings: the backend emits heterogeneous formats
// (database text and RFC 3339) and the client only displays them.
type Task struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Status      TaskStatus `json:"status"`
	CreatedAt   string     `json:"created_at"`
	CompletedAt string     `json:"completed_at,omitempty"`
}

// LogLevel is the severity of a backend log entry.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// ParseLevel normalizes a wire level string. Unrecognized values map to
// info rather than failing, so a backend with extra levels degrades cleanly.
func ParseLevel(s string) LogLevel {
	switch LogLevel(s) {
	case LevelInfo, LevelWarning, LevelError:
		return LogLevel(s)
	default:
		return LevelInfo
	}
}

// LogEntry is a single backend log line. Entries are append-only and never
// mutated after creation.
type LogEntry struct {
	Level     LogLevel `json:"level"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
}

// Summary provides task counts for the status bar.
type Summary struct {
	Total     int
	Running   int
	Completed int
	Failed    int
}
