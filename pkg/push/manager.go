package push

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// State is the push channel connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// EventKind discriminates manager events.
type EventKind int

const (
	// EventFrame carries a decoded push frame.
	EventFrame EventKind = iota
	// EventUp signals the channel came up.
	EventUp
	// EventDown signals the channel went down.
	EventDown
)

// Event is one item on the manager's event stream.
type Event struct {
	Kind  EventKind
	Frame Frame // valid when Kind == EventFrame
}

// Option configures a Manager.
type Option func(*Manager)

// WithReconnect controls automatic reconnection (default on). When off the
// manager gives up after the first connection failure or drop.
func WithReconnect(enabled bool) Option {
	return func(m *Manager) {
		m.reconnect = enabled
	}
}

// WithBackoff overrides the reconnect delay bounds.
func WithBackoff(base, max time.Duration) Option {
	return func(m *Manager) {
		m.backoff = newBackoff(base, max)
	}
}

// Manager owns the push WebSocket connection. It dials, reads frames, and
// reconnects with exponential backoff, surfacing everything as Events. A
// Manager runs one connection at a time; losing it never touches client
// state beyond the connectivity flag the consumer maintains.
type Manager struct {
	url       string
	reconnect bool
	dialer    *websocket.Dialer
	backoff   *backoff
	events    chan Event

	mu      sync.Mutex
	state   State
	started bool
}

// NewManager creates a manager for the push endpoint at url
// (e.g. ws://localhost:8000/ws). Call Start to begin connecting.
func NewManager(url string, opts ...Option) *Manager {
	m := &Manager{
		url:       url,
		reconnect: true,
		dialer:    websocket.DefaultDialer,
		backoff:   newBackoff(DefaultBackoffBase, DefaultBackoffMax),
		events:    make(chan Event, 100),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Events returns the event stream. It is closed when the manager exits,
// either because ctx was cancelled or because reconnection is disabled and
// the connection was lost.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Start launches the connection loop in a goroutine. It is a no-op if
// called more than once. The loop runs until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	defer close(m.events)
	defer m.setState(StateDisconnected)

	for {
		if ctx.Err() != nil {
			return
		}

		m.setState(StateConnecting)
		conn, _, err := m.dialer.DialContext(ctx, m.url, nil)
		if err != nil {
			m.setState(StateDisconnected)
			if ctx.Err() != nil {
				return
			}
			log.Warnf("Push channel dial failed: %v", err)
			if !m.wait(ctx) {
				return
			}
			continue
		}

		m.backoff.Reset()
		m.setState(StateConnected)
		log.Debugf("Push channel connected: %s", m.url)
		if !m.emit(ctx, Event{Kind: EventUp}) {
			conn.Close()
			return
		}

		m.readLoop(ctx, conn)

		m.setState(StateDisconnected)
		if ctx.Err() != nil {
			return
		}
		log.Warnf("Push channel lost: %s", m.url)
		if !m.emit(ctx, Event{Kind: EventDown}) {
			return
		}
		if !m.wait(ctx) {
			return
		}
	}
}

// readLoop reads frames until the connection drops or ctx is cancelled.
// Malformed frames are logged and dropped; well-formed ones are emitted.
func (m *Manager) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)

	// Unblock ReadMessage when the context ends.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
			conn.Close()
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		frame, err := ParseFrame(data)
		if err != nil {
			log.Warnf("Dropping malformed push frame: %v", err)
			continue
		}

		if !m.emit(ctx, Event{Kind: EventFrame, Frame: frame}) {
			return
		}
	}
}

// emit delivers an event, giving up when ctx ends. Returns false if the
// manager should stop.
func (m *Manager) emit(ctx context.Context, ev Event) bool {
	select {
	case m.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// wait sleeps for the next backoff delay. Returns false if the manager
// should stop instead of retrying.
func (m *Manager) wait(ctx context.Context) bool {
	if !m.reconnect {
		return false
	}
	delay := m.backoff.Next()
	log.Debugf("Push channel retry in %s", delay)
	select {
	case <-time.After(delay):
		return true
	case <-ctx.Done():
		return false
	}
}
