// Package dispatch routes decoded push frames to their effect on client
// state. Log frames mutate the store directly; task lifecycle frames only
// signal that a re-fetch is due, so the poll path stays the single writer
// for status and tasks.
package dispatch

import (
	log "github.com/sirupsen/logrus"

	"github.com/nexwatch/nexwatch/pkg/push"
	"github.com/nexwatch/nexwatch/pkg/state"
)

// Action tells the caller what follow-up a frame requires.
type Action int

const (
	// ActionNone means the frame was fully handled (or dropped).
	ActionNone Action = iota
	// ActionRefresh means status and tasks should be re-fetched.
	ActionRefresh
)

// Result describes what a frame did. Entry is non-nil when a log entry was
// appended, so display layers can extend their view without re-deriving the
// conversion.
type Result struct {
	Action Action
	Entry  *state.LogEntry
}

// Dispatcher applies push frames to a store.
type Dispatcher struct {
	store *state.Store
}

// New creates a dispatcher writing into store.
func New(store *state.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Dispatch applies one frame and reports the required follow-up.
//
// Log frames append to the log ring immediately; no fetch round-trip is
// involved. Task lifecycle frames never patch the task list from their own
// payload, they only request a refresh; the next full snapshot carries the
// authoritative change. Unknown frame types are logged and dropped.
func (d *Dispatcher) Dispatch(frame push.Frame) Result {
	switch frame.Type {
	case push.FrameLog:
		entry := frame.LogEntry()
		d.store.AppendLog(entry)
		return Result{Entry: &entry}

	case push.FrameTaskStarted, push.FrameTaskCompleted:
		return Result{Action: ActionRefresh}

	case push.FrameConnected:
		// Handshake greeting, no state to apply.
		return Result{}

	default:
		log.Warnf("Dropping push frame with unknown type %q", frame.Type)
		return Result{}
	}
}
