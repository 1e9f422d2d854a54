package state

import (
	"testing"
)

// TestReplaceStatus tests wholesale status replacement
func TestReplaceStatus(t *testing.T) {
	store := NewStore(100)

	if _, ok := store.Status(); ok {
		t.Error("Expected no status before first replace")
	}

	store.ReplaceStatus(SystemStatus{
		Status:         SystemRunning,
		Uptime:         42.5,
		ActiveAgents:   2,
		TasksCompleted: 7,
		CurrentTask:    "build report",
	})

	status, ok := store.Status()
	if !ok {
		t.Fatal("Expected status after replace")
	}
	if status.Status != SystemRunning {
		t.Errorf("Expected running, got %s", status.Status)
	}
	if status.Uptime != 42.5 {
		t.Errorf("Expected uptime 42.5, got %f", status.Uptime)
	}
	if status.CurrentTask != "build report" {
		t.Errorf("Expected current task 'build report', got %q", status.CurrentTask)
	}
}

// TestReplaceStatus_LastWriteWins tests that call order decides the outcome
func TestReplaceStatus_LastWriteWins(t *testing.T) {
	store := NewStore(100)

	store.ReplaceStatus(SystemStatus{Status: SystemRunning, TasksCompleted: 3})
	store.ReplaceStatus(SystemStatus{Status: SystemStopped, TasksCompleted: 5})

	status, _ := store.Status()
	if status.Status != SystemStopped || status.TasksCompleted != 5 {
		t.Errorf("Expected last snapshot to win, got %+v", status)
	}
}

// TestReplaceTasks tests full task list replacement keyed by id
func TestReplaceTasks(t *testing.T) {
	store := NewStore(100)

	store.ReplaceTasks([]Task{
		{ID: 7, Name: "analyze logs", Status: TaskRunning, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: 3, Name: "build report", Status: TaskCompleted, CreatedAt: "2024-01-01T00:00:00Z", CompletedAt: "2024-01-01T00:05:00Z"},
	})

	if store.TaskCount() != 2 {
		t.Fatalf("Expected 2 tasks, got %d", store.TaskCount())
	}

	task, ok := store.Task(7)
	if !ok {
		t.Fatal("Expected to find task 7")
	}
	if task.Name != "analyze logs" || task.Status != TaskRunning {
		t.Errorf("Unexpected task 7: %+v", task)
	}

	// Replacing again drops tasks absent from the new snapshot
	store.ReplaceTasks([]Task{
		{ID: 7, Name: "analyze logs", Status: TaskCompleted},
	})

	if store.TaskCount() != 1 {
		t.Errorf("Expected 1 task after replace, got %d", store.TaskCount())
	}
	if _, ok := store.Task(3); ok {
		t.Error("Task 3 should be gone after replace")
	}
	task, _ = store.Task(7)
	if task.Status != TaskCompleted {
		t.Errorf("Expected task 7 completed after replace, got %s", task.Status)
	}
}

// TestTasks_PreservesServerOrder tests that the snapshot order survives
func TestTasks_PreservesServerOrder(t *testing.T) {
	store := NewStore(100)

	store.ReplaceTasks([]Task{
		{ID: 9, Name: "newest"},
		{ID: 5, Name: "middle"},
		{ID: 1, Name: "oldest"},
	})

	tasks := store.Tasks()
	if tasks[0].ID != 9 || tasks[1].ID != 5 || tasks[2].ID != 1 {
		t.Errorf("Server order not preserved: %+v", tasks)
	}
}

// TestAppendLog_And_ReplaceLogs tests the two log write paths
func TestAppendLog_And_ReplaceLogs(t *testing.T) {
	store := NewStore(100)

	store.ReplaceLogs([]LogEntry{
		{Level: LevelInfo, Message: "seeded", Timestamp: "2024-01-01T00:00:00Z"},
	})
	store.AppendLog(LogEntry{Level: LevelWarning, Message: "disk low", Timestamp: "2024-01-01T00:00:01Z"})

	logs := store.Logs(0)
	if len(logs) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(logs))
	}

	tail := logs[len(logs)-1]
	if tail.Level != LevelWarning || tail.Message != "disk low" || tail.Timestamp != "2024-01-01T00:00:01Z" {
		t.Errorf("Unexpected tail entry: %+v", tail)
	}
}

// TestSetConnected tests the connectivity flag
func TestSetConnected(t *testing.T) {
	store := NewStore(100)

	if store.Connected() {
		t.Error("Expected disconnected initially")
	}

	store.SetConnected(true)
	if !store.Connected() {
		t.Error("Expected connected after SetConnected(true)")
	}

	// Connection loss flips the flag but leaves snapshot data intact
	store.ReplaceStatus(SystemStatus{Status: SystemRunning})
	store.SetConnected(false)

	if store.Connected() {
		t.Error("Expected disconnected after SetConnected(false)")
	}
	if _, ok := store.Status(); !ok {
		t.Error("Status should survive a disconnect")
	}
}

// TestSummary tests task counting by status
func TestSummary(t *testing.T) {
	store := NewStore(100)

	store.ReplaceTasks([]Task{
		{ID: 1, Status: TaskRunning},
		{ID: 2, Status: TaskRunning},
		{ID: 3, Status: TaskCompleted},
		{ID: 4, Status: TaskFailed},
	})

	sum := store.Summary()
	if sum.Total != 4 || sum.Running != 2 || sum.Completed != 1 || sum.Failed != 1 {
		t.Errorf("Unexpected summary: %+v", sum)
	}
}

// TestNotify tests that every mutation fires the change callback
func TestNotify(t *testing.T) {
	store := NewStore(100)

	fired := 0
	store.SetNotify(func() { fired++ })

	store.ReplaceStatus(SystemStatus{Status: SystemRunning})
	store.ReplaceTasks([]Task{{ID: 1}})
	store.AppendLog(LogEntry{Message: "x"})
	store.ReplaceLogs([]LogEntry{{Message: "y"}})
	store.SetConnected(true)

	if fired != 5 {
		t.Errorf("Expected 5 notifications, got %d", fired)
	}
}

// TestNotify_CanReadStore tests that the callback may read the store without
// deadlocking
func TestNotify_CanReadStore(t *testing.T) {
	store := NewStore(100)

	var seen int
	store.SetNotify(func() { seen = store.LogCount() })

	store.AppendLog(LogEntry{Message: "x"})
	if seen != 1 {
		t.Errorf("Expected callback to observe 1 log entry, got %d", seen)
	}
}

// TestParseLevel tests wire level normalization
func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"info":    LevelInfo,
		"warning": LevelWarning,
		"error":   LevelError,
		"debug":   LevelInfo, // unknown degrades to info
		"":        LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}
