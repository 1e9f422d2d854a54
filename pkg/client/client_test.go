package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nexwatch/nexwatch/pkg/state"
)

// TestFetchStatus tests decoding a status snapshot
func TestFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" || r.Method != http.MethodGet {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":          "running",
			"uptime":          12.5,
			"active_agents":   3,
			"tasks_completed": 9,
			"current_task":    "index documents",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	status, err := c.FetchStatus(context.Background())
	if err != nil {
		t.Fatalf("FetchStatus failed: %v", err)
	}
	if !status.Running() {
		t.Error("Expected running status")
	}
	if status.ActiveAgents != 3 || status.TasksCompleted != 9 {
		t.Errorf("Unexpected counters: %+v", status)
	}
	if status.CurrentTask != "index documents" {
		t.Errorf("Expected current task, got %q", status.CurrentTask)
	}
}

// TestFetchTasks tests decoding the task list in server order
func TestFetchTasks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 2, "name": "newest", "status": "running", "created_at": "2024-01-01T00:01:00Z"},
			{"id": 1, "name": "oldest", "status": "completed", "created_at": "2024-01-01T00:00:00Z", "completed_at": "2024-01-01T00:00:30Z"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	tasks, err := c.FetchTasks(context.Background())
	if err != nil {
		t.Fatalf("FetchTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != 2 || tasks[1].ID != 1 {
		t.Errorf("Server order not preserved: %+v", tasks)
	}
	if tasks[1].Status != state.TaskCompleted || tasks[1].CompletedAt == "" {
		t.Errorf("Unexpected completed task: %+v", tasks[1])
	}
}

// TestFetchLogs tests the limit parameter and most-recent-first reversal
func TestFetchLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("Expected limit=50, got %q", got)
		}
		// Backend order: most recent first
		json.NewEncoder(w).Encode([]map[string]string{
			{"level": "error", "message": "third", "timestamp": "2024-01-01T00:00:02Z"},
			{"level": "warning", "message": "second", "timestamp": "2024-01-01T00:00:01Z"},
			{"level": "info", "message": "first", "timestamp": "2024-01-01T00:00:00Z"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	logs, err := c.FetchLogs(context.Background(), 50)
	if err != nil {
		t.Fatalf("FetchLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 logs, got %d", len(logs))
	}
	// Chronological order after reversal
	if logs[0].Message != "first" || logs[2].Message != "third" {
		t.Errorf("Expected chronological order, got %+v", logs)
	}
	if logs[2].Level != state.LevelError {
		t.Errorf("Expected error level, got %s", logs[2].Level)
	}
}

// TestFetchLogs_DefaultLimit tests that a non-positive limit uses the ring
// default
func TestFetchLogs_DefaultLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("Expected limit=100, got %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.FetchLogs(context.Background(), 0); err != nil {
		t.Fatalf("FetchLogs failed: %v", err)
	}
}

// TestStartStop tests the control endpoints
func TestStartStop(t *testing.T) {
	var started, stopped bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/start":
			started = true
		case "/stop":
			stopped = true
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if !started || !stopped {
		t.Error("Expected both endpoints to be hit")
	}
}

// TestSubmitTask tests the submission payload and mode default
func TestSubmitTask(t *testing.T) {
	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" || r.Method != http.MethodPost {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.SubmitTask(context.Background(), "  summarize results  ", ""); err != nil {
		t.Fatalf("SubmitTask failed: %v", err)
	}
	if payload["task"] != "summarize results" {
		t.Errorf("Expected trimmed description, got %q", payload["task"])
	}
	if payload["mode"] != DefaultMode {
		t.Errorf("Expected default mode %q, got %q", DefaultMode, payload["mode"])
	}

	if err := c.SubmitTask(context.Background(), "dig deeper", "research"); err != nil {
		t.Fatalf("SubmitTask failed: %v", err)
	}
	if payload["mode"] != "research" {
		t.Errorf("Expected mode research, got %q", payload["mode"])
	}
}

// TestSubmitTask_EmptyDescription tests that validation blocks the request
// before any network call
func TestSubmitTask_EmptyDescription(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	c := New(server.URL)
	for _, desc := range []string{"", "   ", "\t\n"} {
		err := c.SubmitTask(context.Background(), desc, "auto")
		if err == nil {
			t.Fatalf("Expected validation error for %q", desc)
		}
		if !IsValidation(err) {
			t.Errorf("Expected ValidationError, got %T: %v", err, err)
		}
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("Expected no network calls, got %d", n)
	}
}

// TestErrorClassification tests the transport/parse error split
func TestErrorClassification(t *testing.T) {
	// Unreachable server yields a transport error
	c := New("http://127.0.0.1:1")
	_, err := c.FetchStatus(context.Background())
	if !IsTransport(err) {
		t.Errorf("Expected TransportError for unreachable server, got %T: %v", err, err)
	}

	// Non-200 yields a transport error carrying the status
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c = New(server.URL)
	_, err = c.FetchStatus(context.Background())
	if !IsTransport(err) {
		t.Errorf("Expected TransportError for 500, got %T: %v", err, err)
	}

	// Malformed body yields a parse error
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer badServer.Close()

	c = New(badServer.URL)
	_, err = c.FetchStatus(context.Background())
	if !IsParse(err) {
		t.Errorf("Expected ParseError for malformed body, got %T: %v", err, err)
	}

	var pe *ParseError
	if !errors.As(err, &pe) || pe.Op != "GET /status" {
		t.Errorf("Expected operation name in error, got %v", err)
	}
}

// TestCancelledContext tests that a cancelled context aborts the request
func TestCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "running"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(server.URL)
	if _, err := c.FetchStatus(ctx); err == nil {
		t.Error("Expected error from cancelled context")
	}
}
