package state

import (
	"sync"
)

// Store is the single source of truth for everything the display layer
// renders: the latest system status, the task collection, the log ring, and
// the push-channel connectivity flag. All mutations go through the named
// methods below; the display layer only reads.
//
// Polls replace status/tasks wholesale and the push path only appends logs,
// so the two update channels touch disjoint data and never conflict.
type Store struct {
	mu sync.RWMutex

	status    SystemStatus
	hasStatus bool

	tasks  []Task // server order (most recent first)
	byID   map[int64]int
	logs   *LogRing
	online bool

	notify func()
}

// NewStore creates a store with a log ring of the given capacity
// (<= 0 uses DefaultLogCapacity).
func NewStore(logCapacity int) *Store {
	return &Store{
		byID: make(map[int64]int),
		logs: NewLogRing(logCapacity),
	}
}

// SetNotify registers a callback fired after every mutation. The TUI wires
// this through a debouncer to coalesce refresh bursts. The callback runs
// outside the store lock.
func (s *Store) SetNotify(fn func()) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

func (s *Store) changed() {
	s.mu.RLock()
	fn := s.notify
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// ReplaceStatus adopts a full status snapshot. Last write wins with respect
// to call order.
func (s *Store) ReplaceStatus(status SystemStatus) {
	s.mu.Lock()
	s.status = status
	s.hasStatus = true
	s.mu.Unlock()
	s.changed()
}

// Status returns the latest status snapshot and whether one has ever been
// applied.
func (s *Store) Status() (SystemStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.hasStatus
}

// ReplaceTasks adopts a full task list snapshot, keyed by id. Polls return
// complete snapshots, so no partial merge is ever needed.
func (s *Store) ReplaceTasks(tasks []Task) {
	s.mu.Lock()
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	s.byID = make(map[int64]int, len(tasks))
	for i, t := range s.tasks {
		s.byID[t.ID] = i
	}
	s.mu.Unlock()
	s.changed()
}

// Tasks returns a copy of the task list in server order.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns the task with the given id, if present.
func (s *Store) Task(id int64) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Task{}, false
	}
	return s.tasks[i], true
}

// TaskCount returns the number of known tasks.
func (s *Store) TaskCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// AppendLog appends one entry to the log ring. This is the low-latency push
// path; no fetch round-trip is involved.
func (s *Store) AppendLog(entry LogEntry) {
	s.mu.Lock()
	s.logs.Append(entry)
	s.mu.Unlock()
	s.changed()
}

// ReplaceLogs seeds the log ring from a cold-fetch snapshot, given in
// chronological order.
func (s *Store) ReplaceLogs(entries []LogEntry) {
	s.mu.Lock()
	s.logs.ReplaceAll(entries)
	s.mu.Unlock()
	s.changed()
}

// Logs returns the last n buffered log entries in chronological order.
// n <= 0 returns everything.
func (s *Store) Logs(n int) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logs.Tail(n)
}

// LogCount returns the number of buffered log entries.
func (s *Store) LogCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logs.Len()
}

// SetConnected records push-channel connectivity. This flag is not part of
// SystemStatus; it reflects the client's own connection state.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	s.online = connected
	s.mu.Unlock()
	s.changed()
}

// Connected reports push-channel connectivity.
func (s *Store) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// Summary returns task counts by status for the status bar.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{Total: len(s.tasks)}
	for _, t := range s.tasks {
		switch t.Status {
		case TaskRunning:
			sum.Running++
		case TaskCompleted:
			sum.Completed++
		case TaskFailed:
			sum.Failed++
		}
	}
	return sum
}
