// Package client implements the pull side of the monitoring client: typed
// HTTP operations against the backend REST API, plus the shared error
// taxonomy used by both the pull and push paths.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nexwatch/nexwatch/pkg/state"
)

// DefaultTimeout bounds every HTTP round trip. A poll that outlives the
// poll interval is treated as failed rather than queued behind the next one.
const DefaultTimeout = 10 * time.Second

// DefaultMode is applied when a task is submitted without an explicit mode.
const DefaultMode = "auto"

// Modes lists the execution modes the backend accepts, in cycle order.
var Modes = []string{"auto", "research", "develop", "analyze"}

// Client wraps http.Client with a base URL and typed operations for the
// backend API. All methods are safe for concurrent use.
type Client struct {
	client  *http.Client
	baseURL string
}

// New creates a client for the backend API at baseURL
// (e.g. http://localhost:8000).
func New(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &TransportError{Op: "GET " + path, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ParseError{Op: "GET " + path, Err: err}
	}

	return nil
}

// post performs a POST request with an optional JSON body and decodes the
// JSON response into result when result is non-nil.
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ParseError{Op: "POST " + path, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &TransportError{Op: "POST " + path, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &ParseError{Op: "POST " + path, Err: err}
		}
	}

	return nil
}

// FetchStatus retrieves the current system status snapshot.
func (c *Client) FetchStatus(ctx context.Context) (state.SystemStatus, error) {
	var status state.SystemStatus
	if err := c.get(ctx, "/status", &status); err != nil {
		return state.SystemStatus{}, err
	}
	return status, nil
}

// FetchTasks retrieves the full task list. The backend returns a bare array,
// most recent first; that order is preserved.
func (c *Client) FetchTasks(ctx context.Context) ([]state.Task, error) {
	var tasks []state.Task
	if err := c.get(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FetchLogs retrieves up to limit recent log entries. The backend returns
// them most recent first; they are reversed here so callers always see
// chronological order. limit <= 0 uses the log ring default.
func (c *Client) FetchLogs(ctx context.Context, limit int) ([]state.LogEntry, error) {
	if limit <= 0 {
		limit = state.DefaultLogCapacity
	}

	var logs []state.LogEntry
	path := fmt.Sprintf("/logs?limit=%d", limit)
	if err := c.get(ctx, path, &logs); err != nil {
		return nil, err
	}

	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	for i := range logs {
		logs[i].Level = state.ParseLevel(string(logs[i].Level))
	}
	return logs, nil
}

// Start asks the backend to start the system.
func (c *Client) Start(ctx context.Context) error {
	return c.post(ctx, "/start", nil, nil)
}

// Stop asks the backend to stop the system.
func (c *Client) Stop(ctx context.Context) error {
	return c.post(ctx, "/stop", nil, nil)
}

// SubmitTask submits a new task. A description that is empty after trimming
// whitespace is rejected with a ValidationError before any network I/O; an
// empty mode defaults to DefaultMode.
func (c *Client) SubmitTask(ctx context.Context, description, mode string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return &ValidationError{Reason: "task description must not be empty"}
	}
	if mode == "" {
		mode = DefaultMode
	}

	body := map[string]string{
		"task": description,
		"mode": mode,
	}
	return c.post(ctx, "/tasks", body, nil)
}
