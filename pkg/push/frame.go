// Package push implements the push side of the monitoring client: a
// WebSocket channel delivering backend events as they happen, with
// automatic reconnection.
package push

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/nexwatch/nexwatch/pkg/client"
	"github.com/nexwatch/nexwatch/pkg/state"
)

// Frame types emitted by the backend push channel.
const (
	FrameLog           = "log"
	FrameTaskStarted   = "task_started"
	FrameTaskCompleted = "task_completed"
	FrameConnected     = "connected"
)

// Frame is one decoded push message. The backend sends a flat JSON object;
// which fields are populated depends on Type.
type Frame struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp,omitempty"`

	// log frames
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`

	// task_started / task_completed frames
	TaskID string `json:"task_id,omitempty"`
	Task   string `json:"task,omitempty"`
	Result string `json:"result,omitempty"`
}

// ParseFrame decodes a raw push message. Frames that are not valid JSON or
// carry no type are rejected with a ParseError; callers drop them without
// touching client state.
func ParseFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, &client.ParseError{Op: "push frame", Err: err}
	}
	if f.Type == "" {
		return Frame{}, &client.ParseError{Op: "push frame", Err: errors.New("missing type field")}
	}
	return f, nil
}

// LogEntry converts a log frame into a state entry. Only meaningful for
// FrameLog frames.
func (f Frame) LogEntry() state.LogEntry {
	return state.LogEntry{
		Level:     state.ParseLevel(f.Level),
		Message:   f.Message,
		Timestamp: f.Timestamp,
	}
}
