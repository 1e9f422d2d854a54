package push

import (
	"testing"

	"github.com/nexwatch/nexwatch/pkg/client"
	"github.com/nexwatch/nexwatch/pkg/state"
)

// TestParseFrame tests decoding of each frame type
func TestParseFrame(t *testing.T) {
	frame, err := ParseFrame([]byte(`{"type":"log","level":"warning","message":"disk low","timestamp":"2024-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if frame.Type != FrameLog || frame.Level != "warning" || frame.Message != "disk low" {
		t.Errorf("Unexpected log frame: %+v", frame)
	}

	frame, err = ParseFrame([]byte(`{"type":"task_started","task_id":"abc","task":"index docs","timestamp":"2024-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if frame.Type != FrameTaskStarted || frame.TaskID != "abc" || frame.Task != "index docs" {
		t.Errorf("Unexpected task_started frame: %+v", frame)
	}

	frame, err = ParseFrame([]byte(`{"type":"task_completed","task_id":"abc","result":"done"}`))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if frame.Type != FrameTaskCompleted || frame.Result != "done" {
		t.Errorf("Unexpected task_completed frame: %+v", frame)
	}
}

// TestParseFrame_Malformed tests that bad frames yield parse errors
func TestParseFrame_Malformed(t *testing.T) {
	cases := []string{
		`{not json`,
		`{"level":"info","message":"no type"}`,
		`42`,
		``,
	}
	for _, in := range cases {
		_, err := ParseFrame([]byte(in))
		if err == nil {
			t.Errorf("Expected error for %q", in)
			continue
		}
		if !client.IsParse(err) {
			t.Errorf("Expected ParseError for %q, got %T: %v", in, err, err)
		}
	}
}

// TestFrame_LogEntry tests conversion with level normalization
func TestFrame_LogEntry(t *testing.T) {
	frame := Frame{Type: FrameLog, Level: "error", Message: "boom", Timestamp: "2024-01-01T00:00:00Z"}
	entry := frame.LogEntry()
	if entry.Level != state.LevelError || entry.Message != "boom" || entry.Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("Unexpected entry: %+v", entry)
	}

	// Unknown levels degrade to info
	frame = Frame{Type: FrameLog, Level: "trace", Message: "x"}
	if frame.LogEntry().Level != state.LevelInfo {
		t.Errorf("Expected info for unknown level, got %s", frame.LogEntry().Level)
	}
}

// TestBackoff tests doubling, the cap, and reset
func TestBackoff(t *testing.T) {
	b := newBackoff(1e9, 4e9) // 1s base, 4s max

	delays := []int64{1e9, 2e9, 4e9, 4e9}
	for i, want := range delays {
		if got := b.Next(); int64(got) != want {
			t.Errorf("Delay %d: expected %d, got %d", i, want, got)
		}
	}

	b.Reset()
	if got := b.Next(); int64(got) != 1e9 {
		t.Errorf("Expected base delay after reset, got %d", got)
	}
}

// TestBackoff_Bounds tests normalization of bad inputs
func TestBackoff_Bounds(t *testing.T) {
	b := newBackoff(0, 0)
	if b.base != DefaultBackoffBase {
		t.Errorf("Expected default base, got %d", b.base)
	}
	if b.max < b.base {
		t.Errorf("Max %d below base %d", b.max, b.base)
	}
}
